package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/mappers"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
	"github.com/rafflehub/rafflehub/internal/shared/db"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
	logger logger.Interface
}

func NewProductRepository(db *gorm.DB, logger logger.Interface) product.Repository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mappers.NewProductMapper(),
		logger: logger,
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, p *product.Product) error {
	model := r.mapper.ToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create product in database", "shop_id", p.ShopID(), "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set product ID: %w", err)
	}
	return nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	var model models.ProductModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		r.logger.Errorw("failed to get product by ID", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// Update writes p if nobody changed it since it was loaded.
func (r *ProductRepositoryImpl) Update(ctx context.Context, p *product.Product) error {
	model := r.mapper.ToModel(p)
	nextVersion := model.Version + 1

	result := db.GetTxFromContext(ctx, r.db).Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":             model.Name,
			"description":      model.Description,
			"value_cents":      model.ValueCents,
			"height_cm":        model.HeightCM,
			"width_cm":         model.WidthCM,
			"depth_cm":         model.DepthCM,
			"requires_deposit": model.RequiresDeposit,
			"status":           model.Status,
			"updated_at":       model.UpdatedAt,
			"version":          nextVersion,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update product", "product_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d version %d", product.ErrVersionConflict, model.ID, model.Version)
	}

	p.SetVersion(nextVersion)
	return nil
}
