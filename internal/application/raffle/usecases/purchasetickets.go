package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/domain/shared/events"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/id"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// PurchaseTicketsCommand is issued once a payment for Quantity tickets is confirmed.
type PurchaseTicketsCommand struct {
	RaffleID         uint
	UserID           string
	Quantity         int
	AmountCents      int64
	PaymentReference string
	Actor            authorization.Actor
}

// PurchaseTicketsUseCase allocates tickets for a confirmed payment. A payment
// reference that was already processed returns the original tickets.
type PurchaseTicketsUseCase struct {
	sm             *StateMachine
	tickets        raffle.TicketRepository
	selector       *WinnerSelector
	ticketsPerUnit int
	logger         logger.Interface
}

func NewPurchaseTicketsUseCase(
	sm *StateMachine,
	tickets raffle.TicketRepository,
	selector *WinnerSelector,
	ticketsPerUnit int,
	logger logger.Interface,
) *PurchaseTicketsUseCase {
	if ticketsPerUnit <= 0 {
		ticketsPerUnit = raffle.DefaultTicketsPerUnit
	}
	return &PurchaseTicketsUseCase{
		sm:             sm,
		tickets:        tickets,
		selector:       selector,
		ticketsPerUnit: ticketsPerUnit,
		logger:         logger,
	}
}

func (uc *PurchaseTicketsUseCase) Execute(ctx context.Context, cmd PurchaseTicketsCommand) (*dto.ReservationDTO, error) {
	uc.logger.Infow("executing purchase tickets use case",
		"raffle_id", cmd.RaffleID,
		"user_id", cmd.UserID,
		"quantity", cmd.Quantity,
		"payment_reference", cmd.PaymentReference)

	if err := uc.validate(cmd); err != nil {
		uc.logger.Warnw("invalid purchase", "raffle_id", cmd.RaffleID, "error", err)
		return nil, apperr.FromDomain(err)
	}
	if err := access.Check(uc.sm.authz, cmd.Actor, permission.ResourceRaffle, permission.ActionPurchase); err != nil {
		return nil, apperr.FromDomain(err)
	}
	if !cmd.Actor.IsSystem() && cmd.Actor.ID != cmd.UserID {
		return nil, apperr.FromDomain(fmt.Errorf("%w: cannot buy tickets for another user", raffle.ErrUnauthorized))
	}

	var (
		result  *dto.ReservationDTO
		soldOut *raffle.Transition
	)
	err := uc.sm.raffles.WithRaffleTransaction(ctx, cmd.RaffleID, func(ctx context.Context, r *raffle.Raffle) error {
		replay, err := uc.replay(ctx, r, cmd)
		if err != nil || replay != nil {
			result = replay
			return err
		}

		now := uc.sm.clock.Now()
		reservation, err := r.Reserve(cmd.Quantity, now)
		if err != nil {
			return err
		}
		reservationID, err := id.NewReservationID()
		if err != nil {
			return err
		}
		tickets, err := raffle.NewTicketsForReservation(r.ID(), reservation.Numbers, cmd.UserID, reservationID, cmd.PaymentReference, now)
		if err != nil {
			return err
		}
		if err := uc.tickets.CreateTickets(ctx, tickets); err != nil {
			return err
		}
		if reservation.SoldOut != nil {
			if err := uc.sm.appendAudit(ctx, authorization.SystemActor().ID, audit.ActionSoldOut, r.ID(), *reservation.SoldOut, nil, now); err != nil {
				return err
			}
		}

		soldOut = reservation.SoldOut
		result = &dto.ReservationDTO{
			RaffleID:         r.ID(),
			ReservationID:    reservationID,
			PaymentReference: cmd.PaymentReference,
			TicketNumbers:    reservation.Numbers,
			RemainingTickets: r.RemainingTickets(),
			Status:           r.Status().String(),
		}
		return nil
	})
	if err != nil {
		if raffle.IsFatal(err) {
			uc.logger.Errorw("ticket allocation aborted",
				"raffle_id", cmd.RaffleID,
				"quantity", cmd.Quantity,
				"severity", "critical",
				"error", err)
		} else {
			uc.logger.Warnw("ticket purchase failed",
				"raffle_id", cmd.RaffleID,
				"quantity", cmd.Quantity,
				"error", err)
		}
		return nil, apperr.FromDomain(err)
	}

	if result.Replayed {
		uc.logger.Infow("payment already processed, returning existing tickets",
			"raffle_id", cmd.RaffleID,
			"payment_reference", cmd.PaymentReference)
		return result, nil
	}

	uc.afterCommit(ctx, result, soldOut)

	uc.logger.Infow("tickets purchased successfully",
		"raffle_id", cmd.RaffleID,
		"reservation_id", result.ReservationID,
		"remaining", result.RemainingTickets)
	return result, nil
}

func (uc *PurchaseTicketsUseCase) validate(cmd PurchaseTicketsCommand) error {
	if cmd.Quantity < 1 {
		return fmt.Errorf("%w: %d", raffle.ErrInvalidQuantity, cmd.Quantity)
	}
	if strings.TrimSpace(cmd.UserID) == "" {
		return fmt.Errorf("%w: user is required", raffle.ErrUnauthorized)
	}
	if !raffle.PaymentCovers(cmd.AmountCents, cmd.Quantity, uc.ticketsPerUnit) {
		return fmt.Errorf("%w: %d cents for %d tickets", raffle.ErrPaymentMismatch, cmd.AmountCents, cmd.Quantity)
	}
	return nil
}

// replay returns the tickets already issued for the payment reference, or nil.
func (uc *PurchaseTicketsUseCase) replay(ctx context.Context, r *raffle.Raffle, cmd PurchaseTicketsCommand) (*dto.ReservationDTO, error) {
	if cmd.PaymentReference == "" {
		return nil, nil
	}
	existing, err := uc.tickets.FindByPaymentReference(ctx, r.ID(), cmd.PaymentReference)
	if err != nil || len(existing) == 0 {
		return nil, err
	}
	if len(existing) != cmd.Quantity || existing[0].OwnerID() != cmd.UserID {
		return nil, fmt.Errorf("%w: reference %s was used for a different purchase", raffle.ErrPaymentMismatch, cmd.PaymentReference)
	}

	numbers := make([]int, 0, len(existing))
	for _, t := range existing {
		numbers = append(numbers, t.Number())
	}
	return &dto.ReservationDTO{
		RaffleID:         r.ID(),
		ReservationID:    existing[0].ReservationID(),
		PaymentReference: cmd.PaymentReference,
		TicketNumbers:    numbers,
		RemainingTickets: r.RemainingTickets(),
		Status:           r.Status().String(),
		Replayed:         true,
	}, nil
}

func (uc *PurchaseTicketsUseCase) afterCommit(ctx context.Context, result *dto.ReservationDTO, soldOut *raffle.Transition) {
	now := uc.sm.clock.Now()
	published := []events.DomainEvent{
		raffle.NewTicketsReservedEvent(result.RaffleID, len(result.TicketNumbers), result.RemainingTickets, now),
	}
	if soldOut != nil {
		published = append(published, raffle.NewStatusChangedEvent(result.RaffleID, *soldOut, 0, now))
	}
	if uc.sm.publisher != nil {
		if err := uc.sm.publisher.PublishAll(published); err != nil {
			uc.logger.Warnw("failed to publish purchase events", "raffle_id", result.RaffleID, "error", err)
		}
	}

	if soldOut == nil {
		return
	}
	// The sale is committed either way; recovery finishes a failed draw.
	if _, err := uc.selector.Execute(ctx, SelectWinnerCommand{
		RaffleID: result.RaffleID,
		Actor:    authorization.SystemActor(),
	}); err != nil {
		uc.logger.Errorw("winner draw after sell-out failed, left for recovery",
			"raffle_id", result.RaffleID,
			"error", err)
	}
}
