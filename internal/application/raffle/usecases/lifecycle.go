package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/domain/shop"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type SubmitRaffleCommand struct {
	RaffleID uint
	Actor    authorization.Actor
}

type PauseRaffleCommand struct {
	RaffleID uint
	Actor    authorization.Actor
}

type ResumeRaffleCommand struct {
	RaffleID uint
	Actor    authorization.Actor
}

type CancelRaffleCommand struct {
	RaffleID uint
	Reason   string
	Actor    authorization.Actor
}

// LifecycleUseCase covers the shop-driven transitions.
type LifecycleUseCase struct {
	sm       *StateMachine
	shops    shop.Repository
	tickets  raffle.TicketRepository
	deposits deposit.Repository
	logger   logger.Interface
}

func NewLifecycleUseCase(
	sm *StateMachine,
	shops shop.Repository,
	tickets raffle.TicketRepository,
	deposits deposit.Repository,
	logger logger.Interface,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		sm:       sm,
		shops:    shops,
		tickets:  tickets,
		deposits: deposits,
		logger:   logger,
	}
}

func (uc *LifecycleUseCase) Submit(ctx context.Context, cmd SubmitRaffleCommand) (*dto.RaffleDTO, error) {
	return uc.sm.run(ctx, cmd.Actor, cmd.RaffleID, transitionSpec{
		action:      permission.ActionSubmit,
		auditAction: audit.ActionSubmit,
		shopScoped:  true,
		guard:       uc.shopNotBlocked,
		apply: func(r *raffle.Raffle, now time.Time) (raffle.Transition, error) {
			return r.Submit(now)
		},
	})
}

func (uc *LifecycleUseCase) Pause(ctx context.Context, cmd PauseRaffleCommand) (*dto.RaffleDTO, error) {
	return uc.sm.run(ctx, cmd.Actor, cmd.RaffleID, transitionSpec{
		action:      permission.ActionPause,
		auditAction: audit.ActionPause,
		shopScoped:  true,
		apply: func(r *raffle.Raffle, now time.Time) (raffle.Transition, error) {
			return r.Pause(now)
		},
	})
}

func (uc *LifecycleUseCase) Resume(ctx context.Context, cmd ResumeRaffleCommand) (*dto.RaffleDTO, error) {
	return uc.sm.run(ctx, cmd.Actor, cmd.RaffleID, transitionSpec{
		action:      permission.ActionResume,
		auditAction: audit.ActionResume,
		shopScoped:  true,
		apply: func(r *raffle.Raffle, now time.Time) (raffle.Transition, error) {
			return r.Resume(now)
		},
	})
}

// Cancel stops the raffle, refunds sold tickets and releases an open deposit.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, cmd CancelRaffleCommand) (*dto.RaffleDTO, error) {
	return uc.sm.run(ctx, cmd.Actor, cmd.RaffleID, transitionSpec{
		action:      permission.ActionCancel,
		auditAction: audit.ActionCancel,
		shopScoped:  true,
		apply: func(r *raffle.Raffle, now time.Time) (raffle.Transition, error) {
			return r.Cancel(cmd.Reason, now)
		},
		after: uc.settleCancellation,
	})
}

func (uc *LifecycleUseCase) shopNotBlocked(ctx context.Context, r *raffle.Raffle) error {
	s, err := uc.shops.GetByID(ctx, r.ShopID())
	if err != nil {
		return fmt.Errorf("failed to load shop: %w", err)
	}
	if s == nil {
		// the shop read model may lag behind the shop service
		uc.logger.Warnw("shop not found in read model, treating as active",
			"shop_id", r.ShopID(),
			"raffle_id", r.ID())
		return nil
	}
	if s.Blocked {
		return fmt.Errorf("%w: shop %d", raffle.ErrShopBlocked, s.ID)
	}
	return nil
}

func (uc *LifecycleUseCase) settleCancellation(ctx context.Context, r *raffle.Raffle, now time.Time) error {
	if r.SoldTickets() > 0 {
		refunded, err := uc.tickets.RefundSold(ctx, r.ID(), now)
		if err != nil {
			return err
		}
		uc.logger.Infow("tickets refunded on cancellation",
			"raffle_id", r.ID(),
			"refunded", refunded)
	}

	if !r.WasActivated() || !r.RequiresDeposit() {
		return nil
	}
	d, err := uc.deposits.GetByRaffleID(ctx, r.ID())
	if err != nil {
		return err
	}
	if d == nil || !d.IsOpen() {
		return nil
	}
	if err := d.Release(now); err != nil {
		return err
	}
	return uc.deposits.Update(ctx, d)
}
