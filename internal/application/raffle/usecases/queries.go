package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/infrastructure/cache"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/services/markdown"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

type GetRaffleQuery struct {
	RaffleID uint
	Actor    authorization.Actor
}

type GetRaffleUseCase struct {
	raffles  raffle.Repository
	authz    access.Authorizer
	markdown markdown.Renderer
	logger   logger.Interface
}

func NewGetRaffleUseCase(raffles raffle.Repository, authz access.Authorizer, md markdown.Renderer, logger logger.Interface) *GetRaffleUseCase {
	return &GetRaffleUseCase{
		raffles:  raffles,
		authz:    authz,
		markdown: md,
		logger:   logger,
	}
}

func (uc *GetRaffleUseCase) Execute(ctx context.Context, query GetRaffleQuery) (*dto.RaffleDTO, error) {
	if err := access.Check(uc.authz, query.Actor, permission.ResourceRaffle, permission.ActionRead); err != nil {
		return nil, apperr.FromDomain(err)
	}

	r, err := uc.raffles.GetByID(ctx, query.RaffleID)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}

	result := dto.ToRaffleDTO(r)
	if r.SpecialConditions() != "" {
		html, err := uc.markdown.ToHTMLSanitized(r.SpecialConditions())
		if err != nil {
			// plain text is still served
			uc.logger.Warnw("failed to render special conditions", "raffle_id", r.ID(), "error", err)
		} else {
			result.SpecialConditionsHTML = html
		}
	}
	return result, nil
}

type GetAvailabilityQuery struct {
	RaffleID uint
}

// GetAvailabilityUseCase serves the public remaining-ticket counter. The
// cache is optional and never consulted by the allocator.
type GetAvailabilityUseCase struct {
	raffles raffle.Repository
	cache   cache.AvailabilityCache
	logger  logger.Interface
}

func NewGetAvailabilityUseCase(raffles raffle.Repository, availability cache.AvailabilityCache, logger logger.Interface) *GetAvailabilityUseCase {
	return &GetAvailabilityUseCase{
		raffles: raffles,
		cache:   availability,
		logger:  logger,
	}
}

func (uc *GetAvailabilityUseCase) Execute(ctx context.Context, query GetAvailabilityQuery) (*dto.AvailabilityDTO, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, query.RaffleID)
		if err != nil {
			uc.logger.Warnw("availability cache read failed", "raffle_id", query.RaffleID, "error", err)
		} else if cached != nil {
			return &dto.AvailabilityDTO{
				RaffleID:         query.RaffleID,
				RemainingTickets: cached.Remaining,
				Status:           cached.Status,
				Cached:           true,
			}, nil
		}
	}

	r, err := uc.raffles.GetByID(ctx, query.RaffleID)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	result := &dto.AvailabilityDTO{
		RaffleID:         r.ID(),
		RemainingTickets: r.RemainingTickets(),
		Status:           r.Status().String(),
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, r.ID(), cache.Availability{
			Remaining: result.RemainingTickets,
			Status:    result.Status,
		}); err != nil {
			uc.logger.Warnw("availability cache write failed", "raffle_id", r.ID(), "error", err)
		}
	}
	return result, nil
}

type ListTicketsQuery struct {
	RaffleID uint
	Page     int
	PageSize int
	Actor    authorization.Actor
}

type ListTicketsResult struct {
	Tickets []*dto.TicketDTO
	Total   int64
}

// ListTicketsUseCase lists a raffle's tickets in number order. Shops only see
// tickets of their own raffles.
type ListTicketsUseCase struct {
	raffles raffle.Repository
	tickets raffle.TicketRepository
	authz   access.Authorizer
	logger  logger.Interface
}

func NewListTicketsUseCase(raffles raffle.Repository, tickets raffle.TicketRepository, authz access.Authorizer, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		raffles: raffles,
		tickets: tickets,
		authz:   authz,
		logger:  logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	if err := access.Check(uc.authz, query.Actor, permission.ResourceTicket, permission.ActionRead); err != nil {
		return nil, apperr.FromDomain(err)
	}

	r, err := uc.raffles.GetByID(ctx, query.RaffleID)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	if err := access.CheckShop(query.Actor, r.ShopID()); err != nil {
		return nil, apperr.FromDomain(err)
	}

	page := utils.ValidatePagination(query.Page, query.PageSize)
	list, total, err := uc.tickets.ListTicketsByRaffle(ctx, r.ID(), page.Offset(), page.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "raffle_id", r.ID(), "error", err)
		return nil, apperr.FromDomain(err)
	}
	return &ListTicketsResult{
		Tickets: dto.ToTicketDTOs(list),
		Total:   total,
	}, nil
}
