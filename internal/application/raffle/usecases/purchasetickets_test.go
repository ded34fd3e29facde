package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	apperrors "github.com/rafflehub/rafflehub/internal/shared/errors"
)

func TestPurchaseTickets_Success(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)

	result, err := h.purchase.Execute(ctx, PurchaseTicketsCommand{
		RaffleID:         id,
		UserID:           "user-1",
		Quantity:         3,
		AmountCents:      150,
		PaymentReference: "pay-1",
		Actor:            authorization.SystemActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result.TicketNumbers)
	assert.Equal(t, 7, result.RemainingTickets)
	assert.Equal(t, vo.StatusActive.String(), result.Status)
	assert.False(t, result.Replayed)
	assert.Contains(t, result.ReservationID, "rsv_")

	list, total, err := h.tickets.ListTicketsByRaffle(ctx, id, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, tk := range list {
		assert.Equal(t, result.ReservationID, tk.ReservationID())
		assert.Equal(t, "user-1", tk.OwnerID())
	}
	assert.Contains(t, h.publisher.types(), raffle.EventTypeTicketsReserved)
}

func TestPurchaseTickets_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		amount   int64
		userID   string
		actor    authorization.Actor
		wantErr  error
	}{
		{"zero quantity", 0, 0, "user-1", authorization.SystemActor(), raffle.ErrInvalidQuantity},
		{"payment short", 2, 99, "user-1", authorization.SystemActor(), raffle.ErrPaymentMismatch},
		{"payment over", 2, 101, "user-1", authorization.SystemActor(), raffle.ErrPaymentMismatch},
		{"more than remaining", 11, 550, "user-1", authorization.SystemActor(), raffle.ErrInsufficientTickets},
		{"missing user", 1, 50, "", authorization.SystemActor(), raffle.ErrUnauthorized},
		{"buying for someone else", 1, 50, "user-2", buyer, raffle.ErrUnauthorized},
		{"shop cannot buy", 1, 50, "shop-owner-1", shopActor, raffle.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			id := h.newActive(t, 10, false)

			_, err := h.purchase.Execute(context.Background(), PurchaseTicketsCommand{
				RaffleID:    id,
				UserID:      tt.userID,
				Quantity:    tt.quantity,
				AmountCents: tt.amount,
				Actor:       tt.actor,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, h.tickets.count(id))
			r, getErr := h.raffles.GetByID(context.Background(), id)
			require.NoError(t, getErr)
			assert.Zero(t, r.SoldTickets())
		})
	}
}

func TestPurchaseTickets_UserBuysForSelf(t *testing.T) {
	h := newTestHarness(t)
	id := h.newActive(t, 10, false)

	result, err := h.purchase.Execute(context.Background(), PurchaseTicketsCommand{
		RaffleID:    id,
		UserID:      buyer.ID,
		Quantity:    1,
		AmountCents: 50,
		Actor:       buyer,
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.TicketNumbers)
}

func TestPurchaseTickets_NotActive(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)
	_, err := h.lifecycle.Pause(ctx, PauseRaffleCommand{RaffleID: id, Actor: shopActor})
	require.NoError(t, err)

	err = h.buy(ctx, id, "user-1", 1, "")

	assert.ErrorIs(t, err, raffle.ErrRaffleNotActive)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestPurchaseTickets_PaymentReplay(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)
	cmd := PurchaseTicketsCommand{
		RaffleID:         id,
		UserID:           "user-1",
		Quantity:         2,
		AmountCents:      100,
		PaymentReference: "pay-42",
		Actor:            authorization.SystemActor(),
	}

	first, err := h.purchase.Execute(ctx, cmd)
	require.NoError(t, err)
	second, err := h.purchase.Execute(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.TicketNumbers, second.TicketNumbers)
	assert.Equal(t, first.ReservationID, second.ReservationID)
	assert.Equal(t, 2, h.tickets.count(id))

	cmd.Quantity = 3
	cmd.AmountCents = 150
	_, err = h.purchase.Execute(ctx, cmd)
	assert.ErrorIs(t, err, raffle.ErrPaymentMismatch)
}

func TestPurchaseTickets_SellOutDrawsWinner(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 4, false)
	require.NoError(t, h.buy(ctx, id, "user-1", 2, "pay-1"))

	result, err := h.purchase.Execute(ctx, PurchaseTicketsCommand{
		RaffleID:    id,
		UserID:      "user-2",
		Quantity:    2,
		AmountCents: 100,
		Actor:       authorization.SystemActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusSoldOut.String(), result.Status)
	assert.Zero(t, result.RemainingTickets)

	r, err := h.raffles.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusFinished, r.Status())
	require.NotNil(t, r.WinningNumber())
	assert.Equal(t, 3, *r.WinningNumber())

	winner, err := h.tickets.GetByRaffleAndNumber(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, vo.TicketStatusWinner, winner.Status())
	assert.Equal(t, winner.ID(), *r.WinnerTicketID())

	actions := h.audit.actions()
	assert.Equal(t, []string{audit.ActionSoldOut, audit.ActionFinish}, actions[len(actions)-2:])
}

func TestPurchaseTickets_FailedDrawLeftForRecovery(t *testing.T) {
	h := newTestHarnessWithRandom(t, fixedRandom{err: errors.New("entropy unavailable")})
	ctx := context.Background()
	id := h.newActive(t, 2, false)

	err := h.buy(ctx, id, "user-1", 2, "")

	require.NoError(t, err)
	assert.Equal(t, vo.StatusSoldOut, h.status(t, id))
	ids, err := h.raffles.ListSoldOutWithoutWinner(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{id}, ids)
}

func TestPurchaseTickets_ConcurrentBuyersNeverOversell(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)
	require.NoError(t, h.buy(ctx, id, "seed", 5, ""))

	const workers = 5
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := h.buy(ctx, id, "user-1", 2, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, raffle.ErrInsufficientTickets):
				insufficient++
			default:
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 3, insufficient)

	r, err := h.raffles.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 9, r.SoldTickets())

	list, _, err := h.tickets.ListTicketsByRaffle(ctx, id, 0, 20)
	require.NoError(t, err)
	numbers := make([]int, 0, len(list))
	for _, tk := range list {
		numbers = append(numbers, tk.Number())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, numbers)
}

func TestPurchaseTickets_FatalAllocationErrorRollsBack(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	id := h.newActive(t, 10, false)
	h.tickets.CreateTicketsFunc = func(ctx context.Context, tickets []*raffle.Ticket) error {
		return raffle.ErrDuplicateTicketNumber
	}

	err := h.buy(ctx, id, "user-1", 1, "")

	assert.ErrorIs(t, err, raffle.ErrDuplicateTicketNumber)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
	r, getErr := h.raffles.GetByID(ctx, id)
	require.NoError(t, getErr)
	assert.Zero(t, r.SoldTickets())
}
