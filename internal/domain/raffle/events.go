package raffle

import (
	"strconv"
	"time"

	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/domain/shared/events"
)

const (
	EventTypeTicketsReserved = "raffle.tickets_reserved"
	EventTypeStatusChanged   = "raffle.status_changed"
)

// TicketsReservedEvent is published after a reservation commits.
type TicketsReservedEvent struct {
	events.BaseEvent
	RaffleID  uint
	Quantity  int
	Remaining int
}

func NewTicketsReservedEvent(raffleID uint, quantity, remaining int, now time.Time) TicketsReservedEvent {
	return TicketsReservedEvent{
		BaseEvent: events.NewBaseEvent(strconv.FormatUint(uint64(raffleID), 10), EventTypeTicketsReserved, now),
		RaffleID:  raffleID,
		Quantity:  quantity,
		Remaining: remaining,
	}
}

// StatusChangedEvent is published after a status transition commits.
type StatusChangedEvent struct {
	events.BaseEvent
	RaffleID  uint
	From      vo.RaffleStatus
	To        vo.RaffleStatus
	Remaining int
}

func NewStatusChangedEvent(raffleID uint, t Transition, remaining int, now time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent: events.NewBaseEvent(strconv.FormatUint(uint64(raffleID), 10), EventTypeStatusChanged, now),
		RaffleID:  raffleID,
		From:      t.From,
		To:        t.To,
		Remaining: remaining,
	}
}
