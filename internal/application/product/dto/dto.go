package dto

import (
	"time"

	"github.com/rafflehub/rafflehub/internal/domain/product"
)

type ProductDTO struct {
	ID              uint      `json:"id"`
	ShopID          uint      `json:"shop_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ValueCents      int64     `json:"value_cents"`
	HeightCM        int       `json:"height_cm"`
	WidthCM         int       `json:"width_cm"`
	DepthCM         int       `json:"depth_cm"`
	RequiresDeposit bool      `json:"requires_deposit"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToProductDTO(p *product.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dims := p.Dimensions()
	return &ProductDTO{
		ID:              p.ID(),
		ShopID:          p.ShopID(),
		Name:            p.Name(),
		Description:     p.Description(),
		ValueCents:      p.ValueCents(),
		HeightCM:        dims.HeightCM,
		WidthCM:         dims.WidthCM,
		DepthCM:         dims.DepthCM,
		RequiresDeposit: p.RequiresDeposit(),
		Status:          p.Status().String(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}
