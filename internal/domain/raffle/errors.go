package raffle

import (
	"errors"
	"fmt"

	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
)

var (
	ErrRaffleNotFound          = errors.New("raffle not found")
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrInvalidStatusTransition = errors.New("invalid state transition")
	ErrInsufficientTickets     = errors.New("insufficient tickets")
	ErrInvalidQuantity         = errors.New("invalid ticket quantity")
	ErrRaffleNotActive         = errors.New("raffle is not accepting purchases")
	ErrMissingRejectReason     = errors.New("reject reason is required")
	ErrMissingCancelReason     = errors.New("cancel reason is required")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrShopBlocked             = errors.New("shop is blocked")
	ErrPaymentMismatch         = errors.New("payment amount does not match ticket quantity")
	ErrBusy                    = errors.New("raffle is busy, retry later")
	ErrConcurrentModification  = errors.New("raffle was modified concurrently")
	ErrInvalidWinningNumber    = errors.New("winning number out of range")

	// ErrDuplicateTicketNumber and ErrInvariantViolation indicate a bug in
	// allocation. They abort the transaction and are logged as critical.
	ErrDuplicateTicketNumber = errors.New("duplicate ticket number")
	ErrInvariantViolation    = errors.New("raffle invariant violated")
)

func ErrInvalidTransition(from, to vo.RaffleStatus) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}

func errInsufficient(requested, remaining int) error {
	return fmt.Errorf("%w: requested %d, remaining %d", ErrInsufficientTickets, requested, remaining)
}

// IsFatal reports whether err signals a broken allocation invariant.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDuplicateTicketNumber) || errors.Is(err, ErrInvariantViolation)
}
