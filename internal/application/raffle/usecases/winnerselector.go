package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type SelectWinnerCommand struct {
	RaffleID uint
	Actor    authorization.Actor
}

// WinnerSelector draws the winning ticket of a sold-out raffle. Running it
// again on a finished raffle returns the recorded winner.
type WinnerSelector struct {
	sm      *StateMachine
	tickets raffle.TicketRepository
	random  raffle.RandomSource
	logger  logger.Interface
}

func NewWinnerSelector(sm *StateMachine, tickets raffle.TicketRepository, random raffle.RandomSource, logger logger.Interface) *WinnerSelector {
	return &WinnerSelector{
		sm:      sm,
		tickets: tickets,
		random:  random,
		logger:  logger,
	}
}

func (s *WinnerSelector) Execute(ctx context.Context, cmd SelectWinnerCommand) (*dto.WinnerDTO, error) {
	if err := access.Check(s.sm.authz, cmd.Actor, permission.ResourceRaffle, permission.ActionDraw); err != nil {
		return nil, apperr.FromDomain(err)
	}

	var (
		result     *dto.WinnerDTO
		transition raffle.Transition
	)
	err := s.sm.raffles.WithRaffleTransaction(ctx, cmd.RaffleID, func(ctx context.Context, r *raffle.Raffle) error {
		if r.Status() == vo.StatusFinished {
			existing, err := s.recordedWinner(ctx, r)
			if err != nil {
				return err
			}
			result = existing
			return nil
		}
		if r.Status() != vo.StatusSoldOut {
			return raffle.ErrInvalidTransition(r.Status(), vo.StatusFinished)
		}

		number, err := raffle.DrawWinningNumber(s.random, r.TotalTickets())
		if err != nil {
			return err
		}
		ticket, err := s.tickets.GetByRaffleAndNumber(ctx, r.ID(), number)
		if err != nil {
			if errors.Is(err, raffle.ErrTicketNotFound) {
				return fmt.Errorf("%w: sold out raffle %d has no ticket %d", raffle.ErrInvariantViolation, r.ID(), number)
			}
			return err
		}

		now := s.sm.clock.Now()
		if err := ticket.MarkWinner(now); err != nil {
			return fmt.Errorf("%w: %v", raffle.ErrInvariantViolation, err)
		}
		if err := s.tickets.UpdateStatus(ctx, ticket); err != nil {
			return err
		}
		t, err := r.Finish(ticket.ID(), number, now)
		if err != nil {
			return err
		}
		metadata := map[string]any{
			"winning_number": number,
			"ticket_id":      ticket.ID(),
			"total_tickets":  r.TotalTickets(),
		}
		if err := s.sm.appendAudit(ctx, cmd.Actor.ID, audit.ActionFinish, r.ID(), t, metadata, now); err != nil {
			return err
		}

		transition = t
		result = &dto.WinnerDTO{
			RaffleID:         r.ID(),
			WinnerTicketID:   ticket.ID(),
			WinningNumber:    number,
			WinnerOwnerID:    ticket.OwnerID(),
			RaffleExecutedAt: now,
		}
		return nil
	})
	if err != nil {
		if raffle.IsFatal(err) {
			s.logger.Errorw("winner draw aborted",
				"raffle_id", cmd.RaffleID,
				"severity", "critical",
				"error", err)
		} else {
			s.logger.Warnw("winner draw failed", "raffle_id", cmd.RaffleID, "error", err)
		}
		return nil, apperr.FromDomain(err)
	}

	if result.AlreadyDrawn {
		return result, nil
	}

	s.sm.publish(raffle.NewStatusChangedEvent(cmd.RaffleID, transition, 0, s.sm.clock.Now()))
	s.logger.Infow("raffle winner drawn",
		"raffle_id", cmd.RaffleID,
		"winning_number", result.WinningNumber,
		"ticket_id", result.WinnerTicketID)
	return result, nil
}

func (s *WinnerSelector) recordedWinner(ctx context.Context, r *raffle.Raffle) (*dto.WinnerDTO, error) {
	ticketID := r.WinnerTicketID()
	if ticketID == nil || r.WinningNumber() == nil {
		return nil, fmt.Errorf("%w: finished raffle %d has no winner", raffle.ErrInvariantViolation, r.ID())
	}
	ticket, err := s.tickets.GetByID(ctx, *ticketID)
	if err != nil {
		return nil, err
	}
	winner := &dto.WinnerDTO{
		RaffleID:       r.ID(),
		WinnerTicketID: *ticketID,
		WinningNumber:  *r.WinningNumber(),
		WinnerOwnerID:  ticket.OwnerID(),
		AlreadyDrawn:   true,
	}
	if at := r.RaffleExecutedAt(); at != nil {
		winner.RaffleExecutedAt = *at
	}
	return winner, nil
}
