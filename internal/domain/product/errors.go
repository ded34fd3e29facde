package product

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension        = errors.New("invalid dimension")
	ErrInvalidProductValue     = errors.New("invalid product value")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductLocked           = errors.New("product is referenced by a non-draft raffle")
	ErrInvalidStatusTransition = errors.New("invalid product status transition")
	ErrVersionConflict         = errors.New("product was modified concurrently")
)

func errDimension(name string, value, limit int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidDimension, name, value)
	}
	return fmt.Errorf("%w: %s %dcm exceeds accepted maximum %dcm", ErrInvalidDimension, name, value, limit)
}
