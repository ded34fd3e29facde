package routes

import (
	"github.com/gin-gonic/gin"

	paymenthandlers "github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/payment"
	"github.com/rafflehub/rafflehub/internal/interfaces/http/middleware"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type PaymentRouteConfig struct {
	PaymentHandler *paymenthandlers.PaymentHandler
	WebhookSecret  string
	Logger         logger.Interface
}

// SetupPaymentRoutes registers the payment collaborator callback, guarded by
// the shared webhook secret instead of a user token.
func SetupPaymentRoutes(engine *gin.Engine, config *PaymentRouteConfig) {
	payments := engine.Group("/payments")
	payments.Use(middleware.WebhookSecret(config.WebhookSecret, config.Logger))
	{
		payments.POST("/confirmations", config.PaymentHandler.ConfirmPayment)
	}
}
