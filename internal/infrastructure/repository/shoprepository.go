package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafflehub/rafflehub/internal/domain/shop"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/db"
)

type ShopRepositoryImpl struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) shop.Repository {
	return &ShopRepositoryImpl{db: db}
}

func (r *ShopRepositoryImpl) GetByID(ctx context.Context, id uint) (*shop.Shop, error) {
	var model models.ShopModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return &shop.Shop{ID: model.ID, Name: model.Name, Blocked: model.Blocked}, nil
}

// Upsert stores the latest state pushed by the shop-management service.
func (r *ShopRepositoryImpl) Upsert(ctx context.Context, s *shop.Shop) error {
	model := models.ShopModel{
		ID:        s.ID,
		Name:      s.Name,
		Blocked:   s.Blocked,
		UpdatedAt: biztime.NowUTC(),
	}
	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "blocked", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert shop: %w", err)
	}
	return nil
}
