package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/mappers"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
	"github.com/rafflehub/rafflehub/internal/shared/db"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type DepositRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DepositMapper
	logger logger.Interface
}

func NewDepositRepository(db *gorm.DB, logger logger.Interface) deposit.Repository {
	return &DepositRepositoryImpl{
		db:     db,
		mapper: mappers.NewDepositMapper(),
		logger: logger,
	}
}

func (r *DepositRepositoryImpl) Create(ctx context.Context, d *deposit.Deposit) error {
	model := r.mapper.ToModel(d)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create deposit", "raffle_id", d.RaffleID(), "error", err)
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return d.SetID(model.ID)
}

func (r *DepositRepositoryImpl) GetByRaffleID(ctx context.Context, raffleID uint) (*deposit.Deposit, error) {
	var model models.DepositModel
	if err := db.GetTxFromContext(ctx, r.db).Where("raffle_id = ?", raffleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *DepositRepositoryImpl) Update(ctx context.Context, d *deposit.Deposit) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.DepositModel{}).
		Where("id = ?", d.ID()).
		Updates(map[string]interface{}{
			"status":     d.Status().String(),
			"updated_at": d.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update deposit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return deposit.ErrDepositNotFound
	}
	return nil
}
