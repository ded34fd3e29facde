package product

import "context"

// Repository persists products. Update is a compare-and-swap on Version.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	Update(ctx context.Context, p *Product) error
}
