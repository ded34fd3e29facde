// Package deposit models the guarantee a shop posts for an oversized prize.
package deposit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusHeld     Status = "held"
	StatusReleased Status = "released"
	StatusExecuted Status = "executed"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusHeld, StatusReleased},
	StatusHeld:     {StatusReleased, StatusExecuted},
	StatusReleased: {},
	StatusExecuted: {},
}

var (
	ErrDepositNotFound         = errors.New("deposit not found")
	ErrInvalidStatusTransition = errors.New("invalid deposit status transition")
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Deposit tracks the guarantee amount tied to one raffle.
type Deposit struct {
	id          uint
	raffleID    uint
	shopID      uint
	amountCents int64
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewDeposit creates a pending deposit for an activated raffle.
func NewDeposit(raffleID, shopID uint, amountCents int64, now time.Time) (*Deposit, error) {
	if raffleID == 0 {
		return nil, fmt.Errorf("raffle ID is required")
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive, got %d", amountCents)
	}
	return &Deposit{
		raffleID:    raffleID,
		shopID:      shopID,
		amountCents: amountCents,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructDeposit reconstructs a deposit from persistence
func ReconstructDeposit(id, raffleID, shopID uint, amountCents int64, status Status, createdAt, updatedAt time.Time) (*Deposit, error) {
	if id == 0 {
		return nil, fmt.Errorf("deposit ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid deposit status: %s", status)
	}
	return &Deposit{
		id:          id,
		raffleID:    raffleID,
		shopID:      shopID,
		amountCents: amountCents,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (d *Deposit) ID() uint {
	return d.id
}

func (d *Deposit) RaffleID() uint {
	return d.raffleID
}

func (d *Deposit) ShopID() uint {
	return d.shopID
}

func (d *Deposit) AmountCents() int64 {
	return d.amountCents
}

func (d *Deposit) Status() Status {
	return d.status
}

func (d *Deposit) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Deposit) UpdatedAt() time.Time {
	return d.updatedAt
}

// SetID sets the deposit ID (only for persistence layer use)
func (d *Deposit) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("deposit ID is already set")
	}
	d.id = id
	return nil
}

// Hold marks the funds as collected by the payment collaborator.
func (d *Deposit) Hold(now time.Time) error {
	return d.transition(StatusHeld, now)
}

// Release returns the funds to the shop.
func (d *Deposit) Release(now time.Time) error {
	return d.transition(StatusReleased, now)
}

// Execute keeps the funds, e.g. when the shop fails to deliver the prize.
func (d *Deposit) Execute(now time.Time) error {
	return d.transition(StatusExecuted, now)
}

// IsOpen reports whether the deposit can still be released.
func (d *Deposit) IsOpen() bool {
	return d.status == StatusPending || d.status == StatusHeld
}

func (d *Deposit) transition(target Status, now time.Time) error {
	if !d.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, d.status, target)
	}
	d.status = target
	d.updatedAt = now
	return nil
}

// Repository persists deposits. GetByRaffleID returns nil, nil when none exists.
type Repository interface {
	Create(ctx context.Context, d *Deposit) error
	GetByRaffleID(ctx context.Context, raffleID uint) (*Deposit, error)
	Update(ctx context.Context, d *Deposit) error
}
