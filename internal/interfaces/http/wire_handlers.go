package http

import (
	paymentHandlers "github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/payment"
	productHandlers "github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/product"
	raffleHandlers "github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/raffle"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	raffleHandler  *raffleHandlers.RaffleHandler
	productHandler *productHandlers.ProductHandler
	paymentHandler *paymentHandlers.PaymentHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		raffleHandler: raffleHandlers.NewRaffleHandler(
			ucs.createRaffleUC,
			ucs.getRaffleUC,
			ucs.availabilityUC,
			ucs.listTicketsUC,
			ucs.lifecycleUC,
			ucs.approvalUC,
			ucs.winnerSelector,
			log,
		),
		productHandler: productHandlers.NewProductHandler(
			ucs.createProductUC,
			ucs.updateProductUC,
			ucs.getProductUC,
			ucs.evaluateDepositUC,
			log,
		),
		paymentHandler: paymentHandlers.NewPaymentHandler(ucs.purchaseUC, log),
	}
}
