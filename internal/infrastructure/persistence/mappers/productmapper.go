package mappers

import (
	"fmt"

	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
)

// ProductMapper handles the conversion between Product domain entities and persistence models.
type ProductMapper interface {
	ToModel(p *product.Product) *models.ProductModel
	ToDomain(model *models.ProductModel) (*product.Product, error)
}

type ProductMapperImpl struct{}

func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) ToModel(p *product.Product) *models.ProductModel {
	dims := p.Dimensions()
	return &models.ProductModel{
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
		Version:         p.Version(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func (m *ProductMapperImpl) ToDomain(model *models.ProductModel) (*product.Product, error) {
	if model == nil {
		return nil, nil
	}
	status, err := product.ParseStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", model.ID, err)
	}
	return product.ReconstructProduct(
		model.ID,
		model.ShopID,
		model.Name,
		model.Description,
		model.ValueCents,
		product.Dimensions{HeightCM: model.HeightCM, WidthCM: model.WidthCM, DepthCM: model.DepthCM},
		model.RequiresDeposit,
		status,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
