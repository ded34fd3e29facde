package raffle

import (
	"github.com/rafflehub/rafflehub/internal/application/raffle/usecases"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
)

type CreateRaffleRequest struct {
	ProductID         uint   `json:"product_id" binding:"required"`
	SpecialConditions string `json:"special_conditions" binding:"max=5000"`
}

func (r *CreateRaffleRequest) ToCommand(actor authorization.Actor) usecases.CreateRaffleCommand {
	return usecases.CreateRaffleCommand{
		ProductID:         r.ProductID,
		SpecialConditions: r.SpecialConditions,
		Actor:             actor,
	}
}

// ReasonRequest is the body of reject and cancel. An empty reason is refused
// by the raffle itself so the caller gets the specific error.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
