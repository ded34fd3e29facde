package valueobjects

import "fmt"

type TicketStatus string

const (
	TicketStatusSold     TicketStatus = "sold"
	TicketStatusWinner   TicketStatus = "winner"
	TicketStatusRefunded TicketStatus = "refunded"
)

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusSold, TicketStatusWinner, TicketStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo allows only the flips out of sold.
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	return s == TicketStatusSold && (target == TicketStatusWinner || target == TicketStatusRefunded)
}

func ParseTicketStatus(s string) (TicketStatus, error) {
	st := TicketStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown ticket status %q", s)
	}
	return st, nil
}
