package usecases

import (
	"context"
	"time"

	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type ApproveRaffleCommand struct {
	RaffleID uint
	Actor    authorization.Actor
}

type RejectRaffleCommand struct {
	RaffleID uint
	Reason   string
	Actor    authorization.Actor
}

// ApprovalWorkflow is the admin gate out of PENDING_APPROVAL.
type ApprovalWorkflow struct {
	sm       *StateMachine
	deposits deposit.Repository
	logger   logger.Interface
}

func NewApprovalWorkflow(sm *StateMachine, deposits deposit.Repository, logger logger.Interface) *ApprovalWorkflow {
	return &ApprovalWorkflow{
		sm:       sm,
		deposits: deposits,
		logger:   logger,
	}
}

// Approve activates the raffle and opens a pending deposit when the product
// requires one.
func (w *ApprovalWorkflow) Approve(ctx context.Context, cmd ApproveRaffleCommand) (*dto.RaffleDTO, error) {
	return w.sm.run(ctx, cmd.Actor, cmd.RaffleID, transitionSpec{
		action:      permission.ActionApprove,
		auditAction: audit.ActionApprove,
		apply: func(r *raffle.Raffle, now time.Time) (raffle.Transition, error) {
			return r.Approve(now)
		},
		after: w.openDeposit,
	})
}

func (w *ApprovalWorkflow) Reject(ctx context.Context, cmd RejectRaffleCommand) (*dto.RaffleDTO, error) {
	return w.sm.run(ctx, cmd.Actor, cmd.RaffleID, transitionSpec{
		action:      permission.ActionReject,
		auditAction: audit.ActionReject,
		apply: func(r *raffle.Raffle, now time.Time) (raffle.Transition, error) {
			return r.Reject(cmd.Reason, now)
		},
	})
}

func (w *ApprovalWorkflow) openDeposit(ctx context.Context, r *raffle.Raffle, now time.Time) error {
	if !r.RequiresDeposit() {
		return nil
	}
	d, err := deposit.NewDeposit(r.ID(), r.ShopID(), r.ProductValueCents(), now)
	if err != nil {
		return err
	}
	if err := w.deposits.Create(ctx, d); err != nil {
		return err
	}
	w.logger.Infow("deposit opened for raffle",
		"raffle_id", r.ID(),
		"shop_id", r.ShopID(),
		"amount_cents", r.ProductValueCents())
	return nil
}
