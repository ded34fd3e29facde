// Package audit models the append-only log of raffle state changes.
package audit

import (
	"context"
	"fmt"
	"time"
)

const EntityTypeRaffle = "raffle"

// Actions recorded for raffle transitions.
const (
	ActionSubmit  = "raffle.submit"
	ActionApprove = "raffle.approve"
	ActionReject  = "raffle.reject"
	ActionPause   = "raffle.pause"
	ActionResume  = "raffle.resume"
	ActionCancel  = "raffle.cancel"
	ActionSoldOut = "raffle.sold_out"
	ActionFinish  = "raffle.finish"
)

// Entry is immutable once built.
type Entry struct {
	actorID        string
	action         string
	entityType     string
	entityID       uint
	previousStatus string
	newStatus      string
	reason         string
	metadata       map[string]any
	createdAt      time.Time
}

func NewEntry(actorID, action, entityType string, entityID uint, previousStatus, newStatus, reason string, metadata map[string]any, createdAt time.Time) (*Entry, error) {
	if actorID == "" {
		return nil, fmt.Errorf("audit actor is required")
	}
	if action == "" {
		return nil, fmt.Errorf("audit action is required")
	}
	if entityID == 0 {
		return nil, fmt.Errorf("audit entity ID is required")
	}
	copied := make(map[string]any, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return &Entry{
		actorID:        actorID,
		action:         action,
		entityType:     entityType,
		entityID:       entityID,
		previousStatus: previousStatus,
		newStatus:      newStatus,
		reason:         reason,
		metadata:       copied,
		createdAt:      createdAt,
	}, nil
}

func (e *Entry) ActorID() string {
	return e.actorID
}

func (e *Entry) Action() string {
	return e.action
}

func (e *Entry) EntityType() string {
	return e.entityType
}

func (e *Entry) EntityID() uint {
	return e.entityID
}

func (e *Entry) PreviousStatus() string {
	return e.previousStatus
}

func (e *Entry) NewStatus() string {
	return e.newStatus
}

func (e *Entry) Reason() string {
	return e.reason
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// Metadata returns a copy of the entry metadata.
func (e *Entry) Metadata() map[string]any {
	out := make(map[string]any, len(e.metadata))
	for k, v := range e.metadata {
		out[k] = v
	}
	return out
}

// Store is an append-only sink. Implementations never update or delete.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
}
