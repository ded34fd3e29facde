package raffle

import (
	"fmt"
	"time"

	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
)

// Ticket is one sold, numbered slot of a raffle.
type Ticket struct {
	id               uint
	raffleID         uint
	number           int
	ownerID          string
	status           vo.TicketStatus
	reservationID    string
	paymentReference string
	purchasedAt      time.Time
	updatedAt        time.Time
}

// NewTicketsForReservation builds the ticket rows for a successful Reserve call.
// All of them share reservationID.
func NewTicketsForReservation(raffleID uint, numbers []int, ownerID, reservationID, paymentReference string, now time.Time) ([]*Ticket, error) {
	if raffleID == 0 {
		return nil, fmt.Errorf("raffle ID is required")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("ticket owner is required")
	}
	if reservationID == "" {
		return nil, fmt.Errorf("reservation ID is required")
	}

	tickets := make([]*Ticket, 0, len(numbers))
	for _, n := range numbers {
		if n < 1 {
			return nil, fmt.Errorf("%w: ticket number %d", ErrInvariantViolation, n)
		}
		tickets = append(tickets, &Ticket{
			raffleID:         raffleID,
			number:           n,
			ownerID:          ownerID,
			status:           vo.TicketStatusSold,
			reservationID:    reservationID,
			paymentReference: paymentReference,
			purchasedAt:      now,
			updatedAt:        now,
		})
	}
	return tickets, nil
}

// ReconstructTicket reconstructs a ticket from persistence
func ReconstructTicket(
	id, raffleID uint,
	number int,
	ownerID string,
	status vo.TicketStatus,
	reservationID, paymentReference string,
	purchasedAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %s", status)
	}
	return &Ticket{
		id:               id,
		raffleID:         raffleID,
		number:           number,
		ownerID:          ownerID,
		status:           status,
		reservationID:    reservationID,
		paymentReference: paymentReference,
		purchasedAt:      purchasedAt,
		updatedAt:        updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) RaffleID() uint {
	return t.raffleID
}

func (t *Ticket) Number() int {
	return t.number
}

func (t *Ticket) OwnerID() string {
	return t.ownerID
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) ReservationID() string {
	return t.reservationID
}

func (t *Ticket) PaymentReference() string {
	return t.paymentReference
}

func (t *Ticket) PurchasedAt() time.Time {
	return t.purchasedAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// SetID sets the ticket ID (only for persistence layer use)
func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	t.id = id
	return nil
}

// MarkWinner flips a sold ticket to winner.
func (t *Ticket) MarkWinner(now time.Time) error {
	return t.flip(vo.TicketStatusWinner, now)
}

// Refund flips a sold ticket to refunded.
func (t *Ticket) Refund(now time.Time) error {
	return t.flip(vo.TicketStatusRefunded, now)
}

func (t *Ticket) flip(target vo.TicketStatus, now time.Time) error {
	if !t.status.CanTransitionTo(target) {
		return fmt.Errorf("ticket %d cannot move from %s to %s", t.number, t.status, target)
	}
	t.status = target
	t.updatedAt = now
	return nil
}
