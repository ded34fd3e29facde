package product

import (
	"fmt"
	"strings"
	"time"
)

const maxNameLength = 200

// Product is the prize a shop puts up for a raffle.
type Product struct {
	id              uint
	shopID          uint
	name            string
	description     string
	valueCents      int64
	dimensions      Dimensions
	requiresDeposit bool
	status          Status
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewProduct creates a draft product and derives its deposit requirement.
func NewProduct(shopID uint, name, description string, valueCents int64, dims Dimensions, policy DepositPolicy, now time.Time) (*Product, error) {
	if shopID == 0 {
		return nil, fmt.Errorf("shop ID is required")
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if valueCents <= 0 {
		return nil, fmt.Errorf("%w: value must be positive, got %d cents", ErrInvalidProductValue, valueCents)
	}
	requires, err := policy.Accept(dims)
	if err != nil {
		return nil, err
	}

	return &Product{
		shopID:          shopID,
		name:            name,
		description:     description,
		valueCents:      valueCents,
		dimensions:      dims,
		requiresDeposit: requires,
		status:          StatusDraft,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructProduct reconstructs a product from persistence
func ReconstructProduct(
	id, shopID uint,
	name, description string,
	valueCents int64,
	dims Dimensions,
	requiresDeposit bool,
	status Status,
	version int,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid product status: %s", status)
	}
	return &Product{
		id:              id,
		shopID:          shopID,
		name:            name,
		description:     description,
		valueCents:      valueCents,
		dimensions:      dims,
		requiresDeposit: requiresDeposit,
		status:          status,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("product name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("product name exceeds %d characters", maxNameLength)
	}
	return nil
}

func (p *Product) ID() uint {
	return p.id
}

func (p *Product) ShopID() uint {
	return p.shopID
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) ValueCents() int64 {
	return p.valueCents
}

func (p *Product) Dimensions() Dimensions {
	return p.dimensions
}

func (p *Product) RequiresDeposit() bool {
	return p.requiresDeposit
}

func (p *Product) Status() Status {
	return p.status
}

func (p *Product) Version() int {
	return p.version
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the product ID (only for persistence layer use)
func (p *Product) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("product ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("product ID cannot be zero")
	}
	p.id = id
	return nil
}

// UpdateMetadata changes the fields that stay editable after the product is
// referenced by a raffle.
func (p *Product) UpdateMetadata(name, description string, now time.Time) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.touch(now)
	return nil
}

// UpdateValue changes the product value. Callers must check the product is
// not locked by a raffle first.
func (p *Product) UpdateValue(valueCents int64, now time.Time) error {
	if valueCents <= 0 {
		return fmt.Errorf("%w: value must be positive, got %d cents", ErrInvalidProductValue, valueCents)
	}
	p.valueCents = valueCents
	p.touch(now)
	return nil
}

// UpdateDimensions changes the dimensions and re-derives the deposit flag.
func (p *Product) UpdateDimensions(dims Dimensions, policy DepositPolicy, now time.Time) error {
	requires, err := policy.Accept(dims)
	if err != nil {
		return err
	}
	p.dimensions = dims
	p.requiresDeposit = requires
	p.touch(now)
	return nil
}

// ChangeStatus moves the product along draft -> published -> archived.
func (p *Product) ChangeStatus(target Status, now time.Time) error {
	if p.status == target {
		return nil
	}
	if !p.status.CanTransitionTo(target) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, p.status, target)
	}
	p.status = target
	p.touch(now)
	return nil
}

// SetVersion records the version written by the repository (only for persistence layer use)
func (p *Product) SetVersion(version int) {
	p.version = version
}

func (p *Product) touch(now time.Time) {
	p.updatedAt = now
}
