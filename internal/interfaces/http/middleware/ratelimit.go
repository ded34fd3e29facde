package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/infrastructure/ratelimit"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

// RateLimiter throttles requests per client IP within a scope.
type RateLimiter struct {
	limiter ratelimit.Limiter
	scope   string
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, scope string, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		logger:  log,
	}
}

// Limit rejects requests above the limit with 429. Limiter failures let the
// request through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil {
			c.Next()
			return
		}

		decision, err := rl.limiter.Allow(c.Request.Context(), rl.scope+":"+c.ClientIP())
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}
