package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

func TestRaffleTicketRepository(t *testing.T) {
	gdb := setupTestDB(t)
	raffles := newTestRaffleRepo(gdb)
	repo := NewRaffleTicketRepository(gdb, logger.NewDiscardLogger())
	ctx := context.Background()
	r := createActiveRaffle(t, raffles, 10)

	list, err := raffle.NewTicketsForReservation(r.ID(), []int{1, 2, 3}, "user-1", "rsv_a", "pay-1", testNow)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTickets(ctx, list))
	for _, tk := range list {
		assert.NotZero(t, tk.ID())
	}

	t.Run("duplicate number is rejected as a whole", func(t *testing.T) {
		dup, err := raffle.NewTicketsForReservation(r.ID(), []int{4, 3}, "user-2", "rsv_b", "", testNow)
		require.NoError(t, err)

		err = repo.CreateTickets(ctx, dup)
		assert.ErrorIs(t, err, raffle.ErrDuplicateTicketNumber)
	})

	t.Run("list is ordered by number and paginated", func(t *testing.T) {
		page, total, err := repo.ListTicketsByRaffle(ctx, r.ID(), 1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 1)
		assert.Equal(t, 2, page[0].Number())
	})

	t.Run("lookup by number and payment reference", func(t *testing.T) {
		tk, err := repo.GetByRaffleAndNumber(ctx, r.ID(), 2)
		require.NoError(t, err)
		assert.Equal(t, "user-1", tk.OwnerID())
		assert.Equal(t, "rsv_a", tk.ReservationID())

		_, err = repo.GetByRaffleAndNumber(ctx, r.ID(), 9)
		assert.ErrorIs(t, err, raffle.ErrTicketNotFound)

		paid, err := repo.FindByPaymentReference(ctx, r.ID(), "pay-1")
		require.NoError(t, err)
		assert.Len(t, paid, 3)

		none, err := repo.FindByPaymentReference(ctx, r.ID(), "")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("status flips", func(t *testing.T) {
		tk, err := repo.GetByID(ctx, list[0].ID())
		require.NoError(t, err)
		require.NoError(t, tk.MarkWinner(testNow))
		require.NoError(t, repo.UpdateStatus(ctx, tk))

		refunded, err := repo.RefundSold(ctx, r.ID(), testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2), refunded)

		winner, err := repo.GetByID(ctx, list[0].ID())
		require.NoError(t, err)
		assert.Equal(t, vo.TicketStatusWinner, winner.Status())

		other, err := repo.GetByID(ctx, list[1].ID())
		require.NoError(t, err)
		assert.Equal(t, vo.TicketStatusRefunded, other.Status())
	})
}
