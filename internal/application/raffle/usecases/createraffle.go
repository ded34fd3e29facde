package usecases

import (
	"context"
	"fmt"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/services/markdown"
)

type CreateRaffleCommand struct {
	ProductID         uint
	SpecialConditions string
	Actor             authorization.Actor
}

// CreateRaffleUseCase opens a DRAFT raffle for a product. Ticket supply and
// the deposit flag are fixed from the product at this point.
type CreateRaffleUseCase struct {
	raffles        raffle.Repository
	products       product.Repository
	authz          access.Authorizer
	markdown       markdown.Renderer
	ticketsPerUnit int
	clock          biztime.Clock
	logger         logger.Interface
}

func NewCreateRaffleUseCase(
	raffles raffle.Repository,
	products product.Repository,
	authz access.Authorizer,
	md markdown.Renderer,
	ticketsPerUnit int,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateRaffleUseCase {
	if ticketsPerUnit <= 0 {
		ticketsPerUnit = raffle.DefaultTicketsPerUnit
	}
	return &CreateRaffleUseCase{
		raffles:        raffles,
		products:       products,
		authz:          authz,
		markdown:       md,
		ticketsPerUnit: ticketsPerUnit,
		clock:          clock,
		logger:         logger,
	}
}

func (uc *CreateRaffleUseCase) Execute(ctx context.Context, cmd CreateRaffleCommand) (*dto.RaffleDTO, error) {
	uc.logger.Infow("executing create raffle use case",
		"product_id", cmd.ProductID,
		"actor_id", cmd.Actor.ID)

	if err := access.Check(uc.authz, cmd.Actor, permission.ResourceRaffle, permission.ActionCreate); err != nil {
		return nil, apperr.FromDomain(err)
	}

	p, err := uc.products.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	if err := access.CheckShop(cmd.Actor, p.ShopID()); err != nil {
		return nil, apperr.FromDomain(err)
	}
	if p.Status() == product.StatusArchived {
		return nil, apperr.FromDomain(fmt.Errorf("%w: product %d is archived", product.ErrInvalidStatusTransition, p.ID()))
	}

	total, err := raffle.ComputeTotalTickets(p.ValueCents(), uc.ticketsPerUnit)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}

	conditions := uc.markdown.StripTags(cmd.SpecialConditions)
	r, err := raffle.NewRaffle(p.ShopID(), p.ID(), p.ValueCents(), total, p.RequiresDeposit(), conditions, uc.clock.Now())
	if err != nil {
		uc.logger.Warnw("invalid raffle input", "product_id", p.ID(), "error", err)
		return nil, apperr.FromInput("invalid raffle", err)
	}
	if err := uc.raffles.Create(ctx, r); err != nil {
		uc.logger.Errorw("failed to create raffle", "product_id", p.ID(), "error", err)
		return nil, apperr.FromDomain(err)
	}

	uc.logger.Infow("raffle created successfully",
		"raffle_id", r.ID(),
		"product_id", p.ID(),
		"total_tickets", total,
		"requires_deposit", r.RequiresDeposit())
	return dto.ToRaffleDTO(r), nil
}
