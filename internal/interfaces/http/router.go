package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/interfaces/http/middleware"
	"github.com/rafflehub/rafflehub/internal/interfaces/http/routes"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() error {
	if err := utils.RegisterBindingValidators(c.cfg.Raffle.MaxEntryDimensionCM); err != nil {
		return err
	}

	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.healthCheck)

	routes.SetupRaffleRoutes(c.engine, &routes.RaffleRouteConfig{
		RaffleHandler:       c.hdlrs.raffleHandler,
		AuthMiddleware:      c.authMiddleware,
		AvailabilityLimiter: c.availabilityLimiter,
	})
	routes.SetupProductRoutes(c.engine, &routes.ProductRouteConfig{
		ProductHandler: c.hdlrs.productHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupPaymentRoutes(c.engine, &routes.PaymentRouteConfig{
		PaymentHandler: c.hdlrs.paymentHandler,
		WebhookSecret:  c.cfg.Auth.WebhookSecret,
		Logger:         c.log,
	})
	return nil
}

func (c *Container) healthCheck(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		c.log.Warnw("health check failed", "error", err)
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "", gin.H{"status": "ok"})
}

// GetEngine returns the gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Run starts the HTTP server
func (c *Container) Run(addr string) error {
	return c.engine.Run(addr)
}
