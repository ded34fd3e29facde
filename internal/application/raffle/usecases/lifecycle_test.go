package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/domain/shop"
	apperrors "github.com/rafflehub/rafflehub/internal/shared/errors"
)

func TestLifecycle_FullPath(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)

	paused, err := h.lifecycle.Pause(ctx, PauseRaffleCommand{RaffleID: id, Actor: shopActor})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPaused.String(), paused.Status)

	resumed, err := h.lifecycle.Resume(ctx, ResumeRaffleCommand{RaffleID: id, Actor: shopActor})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive.String(), resumed.Status)

	cancelled, err := h.lifecycle.Cancel(ctx, CancelRaffleCommand{RaffleID: id, Reason: "prize damaged", Actor: shopActor})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled.String(), cancelled.Status)
	assert.Equal(t, "prize damaged", cancelled.CancelReason)

	assert.Equal(t, []string{
		audit.ActionSubmit,
		audit.ActionApprove,
		audit.ActionPause,
		audit.ActionResume,
		audit.ActionCancel,
	}, h.audit.actions())
	assert.Len(t, h.publisher.types(), 5)
}

func TestLifecycle_InvalidTransitionLeavesNoTrace(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)
	auditBefore := len(h.audit.actions())

	_, err := h.approval.Approve(ctx, ApproveRaffleCommand{RaffleID: id, Actor: adminActor})

	require.Error(t, err)
	assert.ErrorIs(t, err, raffle.ErrInvalidStatusTransition)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Equal(t, vo.StatusActive, h.status(t, id))
	assert.Len(t, h.audit.actions(), auditBefore)
}

func TestLifecycle_ReasonsRequired(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newDraft(t, 10, false)
	_, err := h.lifecycle.Submit(ctx, SubmitRaffleCommand{RaffleID: id, Actor: shopActor})
	require.NoError(t, err)

	_, err = h.approval.Reject(ctx, RejectRaffleCommand{RaffleID: id, Reason: "  ", Actor: adminActor})
	assert.ErrorIs(t, err, raffle.ErrMissingRejectReason)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, vo.StatusPendingApproval, h.status(t, id))

	_, err = h.lifecycle.Cancel(ctx, CancelRaffleCommand{RaffleID: id, Actor: shopActor})
	assert.ErrorIs(t, err, raffle.ErrMissingCancelReason)

	rejected, err := h.approval.Reject(ctx, RejectRaffleCommand{RaffleID: id, Reason: "blurry photos", Actor: adminActor})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusRejected.String(), rejected.Status)
	assert.Equal(t, "blurry photos", rejected.RejectReason)
}

func TestLifecycle_Authorization(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newDraft(t, 10, false)

	tests := []struct {
		name string
		run  func() error
	}{
		{"other shop submits", func() error {
			_, err := h.lifecycle.Submit(ctx, SubmitRaffleCommand{RaffleID: id, Actor: otherShop})
			return err
		}},
		{"buyer submits", func() error {
			_, err := h.lifecycle.Submit(ctx, SubmitRaffleCommand{RaffleID: id, Actor: buyer})
			return err
		}},
		{"admin pauses", func() error {
			_, err := h.lifecycle.Pause(ctx, PauseRaffleCommand{RaffleID: id, Actor: adminActor})
			return err
		}},
		{"shop approves", func() error {
			_, err := h.approval.Approve(ctx, ApproveRaffleCommand{RaffleID: id, Actor: shopActor})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, raffle.ErrUnauthorized)
			assert.True(t, apperrors.IsForbiddenError(err))
		})
	}
	assert.Equal(t, vo.StatusDraft, h.status(t, id))
	assert.Empty(t, h.audit.actions())
}

func TestLifecycle_SubmitBlockedShop(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	h.shops.GetByIDFunc = func(ctx context.Context, id uint) (*shop.Shop, error) {
		return &shop.Shop{ID: id, Blocked: true}, nil
	}
	id := h.newDraft(t, 10, false)

	_, err := h.lifecycle.Submit(ctx, SubmitRaffleCommand{RaffleID: id, Actor: shopActor})

	assert.ErrorIs(t, err, raffle.ErrShopBlocked)
	assert.Equal(t, vo.StatusDraft, h.status(t, id))
}

func TestLifecycle_SubmitUnknownShopAllowed(t *testing.T) {
	h := newTestHarness(t)
	h.shops.GetByIDFunc = func(ctx context.Context, id uint) (*shop.Shop, error) {
		return nil, nil
	}
	id := h.newDraft(t, 10, false)

	_, err := h.lifecycle.Submit(context.Background(), SubmitRaffleCommand{RaffleID: id, Actor: shopActor})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusPendingApproval, h.status(t, id))
}

func TestApproval_DepositOpenedAndReleasedOnCancel(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, true)

	d, err := h.deposits.GetByRaffleID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, deposit.StatusPending, d.Status())
	assert.Equal(t, int64(500), d.AmountCents())

	require.NoError(t, h.buy(ctx, id, "user-1", 3, "pay-1"))

	_, err = h.lifecycle.Cancel(ctx, CancelRaffleCommand{RaffleID: id, Reason: "shop closed", Actor: adminActor})
	require.NoError(t, err)

	d, err = h.deposits.GetByRaffleID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, deposit.StatusReleased, d.Status())

	list, _, err := h.tickets.ListTicketsByRaffle(ctx, id, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, tk := range list {
		assert.Equal(t, vo.TicketStatusRefunded, tk.Status())
	}
}

func TestApproval_NoDepositWhenNotRequired(t *testing.T) {
	h := newTestHarness(t)
	id := h.newActive(t, 10, false)

	d, err := h.deposits.GetByRaffleID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestLifecycle_UnknownRaffle(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.lifecycle.Cancel(context.Background(), CancelRaffleCommand{RaffleID: 404, Reason: "x", Actor: adminActor})
	assert.ErrorIs(t, err, raffle.ErrRaffleNotFound)
	assert.True(t, apperrors.IsNotFoundError(err))
}
