// Package shop holds the read model of shops managed outside this service.
package shop

import "context"

// Shop is the subset of shop state the raffle engine consults.
type Shop struct {
	ID      uint
	Name    string
	Blocked bool
}

// Repository reads shops. GetByID returns nil, nil for an unknown shop.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Shop, error)
	Upsert(ctx context.Context, s *Shop) error
}
