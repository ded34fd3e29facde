package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/application/raffle/usecases"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

// PaymentConfirmationRequest is posted by the payment collaborator once a
// ticket payment settles.
type PaymentConfirmationRequest struct {
	RaffleID         uint   `json:"raffle_id" binding:"required"`
	UserID           string `json:"user_id" binding:"required,max=64"`
	Quantity         int    `json:"quantity" binding:"required,gte=1"`
	AmountCents      int64  `json:"amount_cents" binding:"required,gt=0"`
	PaymentReference string `json:"payment_reference" binding:"required,max=128"`
}

func (r *PaymentConfirmationRequest) ToCommand() usecases.PurchaseTicketsCommand {
	return usecases.PurchaseTicketsCommand{
		RaffleID:         r.RaffleID,
		UserID:           r.UserID,
		Quantity:         r.Quantity,
		AmountCents:      r.AmountCents,
		PaymentReference: r.PaymentReference,
		Actor:            authorization.SystemActor(),
	}
}

type PaymentHandler struct {
	purchaseTicketsUC usecases.PurchaseTicketsExecutor
	logger            logger.Interface
}

func NewPaymentHandler(purchaseTicketsUC usecases.PurchaseTicketsExecutor, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		purchaseTicketsUC: purchaseTicketsUC,
		logger:            logger,
	}
}

// ConfirmPayment handles POST /payments/confirmations. A repeated
// confirmation answers 200 with the tickets issued the first time.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req PaymentConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid payment confirmation", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.purchaseTicketsUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.logger.Warnw("payment confirmation rejected",
			"raffle_id", req.RaffleID,
			"payment_reference", req.PaymentReference,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Replayed {
		utils.SuccessResponse(c, http.StatusOK, "Payment already processed", result)
		return
	}
	utils.CreatedResponse(c, result, "Tickets issued")
}
