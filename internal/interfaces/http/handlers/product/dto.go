package product

import (
	"github.com/rafflehub/rafflehub/internal/application/product/usecases"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/errors"
)

type DimensionsRequest struct {
	HeightCM int `json:"height_cm" binding:"dimension"`
	WidthCM  int `json:"width_cm" binding:"dimension"`
	DepthCM  int `json:"depth_cm" binding:"dimension"`
}

func (d DimensionsRequest) toDomain() product.Dimensions {
	return product.Dimensions{HeightCM: d.HeightCM, WidthCM: d.WidthCM, DepthCM: d.DepthCM}
}

type CreateProductRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Description string            `json:"description" binding:"max=5000"`
	ValueCents  int64             `json:"value_cents" binding:"required,gt=0"`
	Dimensions  DimensionsRequest `json:"dimensions"`
}

func (r *CreateProductRequest) ToCommand(actor authorization.Actor) usecases.CreateProductCommand {
	return usecases.CreateProductCommand{
		ShopID:      actor.ShopID,
		Name:        r.Name,
		Description: r.Description,
		ValueCents:  r.ValueCents,
		Dimensions:  r.Dimensions.toDomain(),
		Actor:       actor,
	}
}

type UpdateProductRequest struct {
	Name        *string            `json:"name,omitempty" binding:"omitempty,max=200"`
	Description *string            `json:"description,omitempty" binding:"omitempty,max=5000"`
	ValueCents  *int64             `json:"value_cents,omitempty" binding:"omitempty,gt=0"`
	Dimensions  *DimensionsRequest `json:"dimensions,omitempty"`
	Status      *string            `json:"status,omitempty" binding:"omitempty,oneof=draft published archived"`
}

func (r *UpdateProductRequest) ToCommand(productID uint, actor authorization.Actor) (usecases.UpdateProductCommand, error) {
	cmd := usecases.UpdateProductCommand{
		ProductID:   productID,
		Name:        r.Name,
		Description: r.Description,
		ValueCents:  r.ValueCents,
		Actor:       actor,
	}
	if r.Dimensions != nil {
		dims := r.Dimensions.toDomain()
		cmd.Dimensions = &dims
	}
	if r.Status != nil {
		status, err := product.ParseStatus(*r.Status)
		if err != nil {
			return cmd, errors.NewValidationError("invalid product status", err.Error())
		}
		cmd.Status = &status
	}
	return cmd, nil
}

// EvaluateDepositRequest takes raw dimensions so forms can show the deposit
// hint before the entry caps apply.
type EvaluateDepositRequest struct {
	HeightCM int `json:"height_cm"`
	WidthCM  int `json:"width_cm"`
	DepthCM  int `json:"depth_cm"`
}
