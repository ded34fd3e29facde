package raffle

import (
	"context"
	"time"
)

// TxFunc mutates a raffle loaded inside the per-raffle transaction. ctx carries
// the transaction so other repositories join it.
type TxFunc func(ctx context.Context, r *Raffle) error

// Repository persists raffles.
type Repository interface {
	Create(ctx context.Context, r *Raffle) error
	// GetByID returns ErrRaffleNotFound for an unknown id.
	GetByID(ctx context.Context, id uint) (*Raffle, error)

	// WithRaffleTransaction serializes writers of one raffle: it takes the
	// raffle lock, loads the row inside a DB transaction, runs fn and writes
	// the result back with a compare-and-swap on version. Lock contention and
	// CAS conflicts are retried with bounded backoff, then reported as ErrBusy.
	// An error from fn rolls back and is returned unchanged.
	WithRaffleTransaction(ctx context.Context, id uint, fn TxFunc) error

	// ListSoldOutWithoutWinner returns ids of raffles stuck in SOLD_OUT.
	ListSoldOutWithoutWinner(ctx context.Context, limit int) ([]uint, error)
	// ExistsNonDraftForProduct reports whether a raffle past DRAFT references productID.
	ExistsNonDraftForProduct(ctx context.Context, productID uint) (bool, error)
}

// TicketRepository persists tickets. Tickets are only created by the allocator.
type TicketRepository interface {
	// CreateTickets inserts all tickets or none. A clash on (raffle, number)
	// returns ErrDuplicateTicketNumber.
	CreateTickets(ctx context.Context, tickets []*Ticket) error
	ListTicketsByRaffle(ctx context.Context, raffleID uint, offset, limit int) ([]*Ticket, int64, error)
	// GetByRaffleAndNumber returns ErrTicketNotFound when absent.
	GetByRaffleAndNumber(ctx context.Context, raffleID uint, number int) (*Ticket, error)
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	FindByPaymentReference(ctx context.Context, raffleID uint, paymentReference string) ([]*Ticket, error)
	UpdateStatus(ctx context.Context, t *Ticket) error
	// RefundSold flips every sold ticket of the raffle to refunded.
	RefundSold(ctx context.Context, raffleID uint, now time.Time) (int64, error)
}
