package valueobjects

import "fmt"

// RaffleStatus is the closed set of raffle lifecycle states.
type RaffleStatus string

const (
	StatusDraft           RaffleStatus = "DRAFT"
	StatusPendingApproval RaffleStatus = "PENDING_APPROVAL"
	StatusActive          RaffleStatus = "ACTIVE"
	StatusPaused          RaffleStatus = "PAUSED"
	StatusSoldOut         RaffleStatus = "SOLD_OUT"
	StatusFinished        RaffleStatus = "FINISHED"
	StatusCancelled       RaffleStatus = "CANCELLED"
	StatusRejected        RaffleStatus = "REJECTED"
)

var raffleTransitions = map[RaffleStatus][]RaffleStatus{
	StatusDraft:           {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval: {StatusActive, StatusRejected, StatusCancelled},
	StatusActive:          {StatusPaused, StatusSoldOut, StatusCancelled},
	StatusPaused:          {StatusActive, StatusCancelled},
	StatusSoldOut:         {StatusFinished},
	StatusFinished:        {},
	StatusCancelled:       {},
	StatusRejected:        {},
}

func (s RaffleStatus) String() string {
	return string(s)
}

func (s RaffleStatus) IsValid() bool {
	_, ok := raffleTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s RaffleStatus) IsTerminal() bool {
	allowed, ok := raffleTransitions[s]
	return ok && len(allowed) == 0
}

func (s RaffleStatus) CanTransitionTo(target RaffleStatus) bool {
	for _, allowed := range raffleTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AcceptsPurchases reports whether tickets can be reserved in s.
func (s RaffleStatus) AcceptsPurchases() bool {
	return s == StatusActive
}

// ParseRaffleStatus matches s exactly; storage values are never case-folded.
func ParseRaffleStatus(s string) (RaffleStatus, error) {
	st := RaffleStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown raffle status %q", s)
	}
	return st, nil
}

// AllRaffleStatuses lists every status in lifecycle order.
func AllRaffleStatuses() []RaffleStatus {
	return []RaffleStatus{
		StatusDraft,
		StatusPendingApproval,
		StatusActive,
		StatusPaused,
		StatusSoldOut,
		StatusFinished,
		StatusCancelled,
		StatusRejected,
	}
}
