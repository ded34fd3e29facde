package raffle

import (
	"fmt"
	"math"

	"github.com/rafflehub/rafflehub/internal/domain/product"
)

// DefaultTicketsPerUnit is the number of tickets issued per currency unit of product value.
const DefaultTicketsPerUnit = 2

// MaxTotalTickets bounds the ticket rows one raffle may materialize.
const MaxTotalTickets = 1_000_000

const centsPerUnit = 100

// ComputeTotalTickets returns floor(value * ticketsPerUnit) for a value in
// cents, using integer arithmetic only.
func ComputeTotalTickets(valueCents int64, ticketsPerUnit int) (int, error) {
	if ticketsPerUnit <= 0 {
		return 0, fmt.Errorf("tickets per unit must be positive, got %d", ticketsPerUnit)
	}
	if valueCents <= 0 || valueCents > math.MaxInt64/int64(ticketsPerUnit) {
		return 0, fmt.Errorf("%w: %d cents", product.ErrInvalidProductValue, valueCents)
	}
	total := valueCents * int64(ticketsPerUnit) / centsPerUnit
	if total <= 0 {
		return 0, fmt.Errorf("%w: %d cents yields no tickets", product.ErrInvalidProductValue, valueCents)
	}
	if total > MaxTotalTickets {
		return 0, fmt.Errorf("%w: %d cents yields %d tickets, maximum is %d",
			product.ErrInvalidProductValue, valueCents, total, MaxTotalTickets)
	}
	return int(total), nil
}

// PaymentCovers reports whether amountCents pays exactly for quantity tickets.
// A ticket costs 1/ticketsPerUnit of a currency unit.
func PaymentCovers(amountCents int64, quantity, ticketsPerUnit int) bool {
	if amountCents <= 0 || quantity <= 0 || ticketsPerUnit <= 0 {
		return false
	}
	if amountCents > math.MaxInt64/int64(ticketsPerUnit) {
		return false
	}
	return amountCents*int64(ticketsPerUnit) == int64(quantity)*centsPerUnit
}
