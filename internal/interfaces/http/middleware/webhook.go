package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/shared/constants"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

// WebhookSecret admits requests carrying the payment collaborator's shared secret.
func WebhookSecret(secret string, log logger.Interface) gin.HandlerFunc {
	expected := []byte(secret)
	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(constants.HeaderWebhookSecret))
		if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			log.Warnw("rejected webhook call with invalid secret",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
