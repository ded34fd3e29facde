package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/mappers"
	"github.com/rafflehub/rafflehub/internal/shared/db"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// AuditRepositoryImpl only inserts; rows are never updated or deleted.
type AuditRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AuditMapper
	logger logger.Interface
}

func NewAuditRepository(db *gorm.DB, logger logger.Interface) audit.Store {
	return &AuditRepositoryImpl{
		db:     db,
		mapper: mappers.NewAuditMapper(),
		logger: logger,
	}
}

func (r *AuditRepositoryImpl) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit entry",
			"action", entry.Action(),
			"entity_id", entry.EntityID(),
			"error", err)
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
