package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/infrastructure/lock"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/mappers"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
	"github.com/rafflehub/rafflehub/internal/shared/db"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// RetryPolicy bounds how often a contended raffle transaction is retried.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryPolicy matches the shipped configuration defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseBackoff: 10 * time.Millisecond,
		MaxBackoff:  200 * time.Millisecond,
	}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.BaseBackoff << (attempt - 1)
	if d <= 0 || d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

type RaffleRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RaffleMapper
	locker lock.RaffleLocker
	retry  RetryPolicy
	logger logger.Interface
}

func NewRaffleRepository(db *gorm.DB, locker lock.RaffleLocker, retry RetryPolicy, logger logger.Interface) *RaffleRepositoryImpl {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}
	return &RaffleRepositoryImpl{
		db:     db,
		mapper: mappers.NewRaffleMapper(),
		locker: locker,
		retry:  retry,
		logger: logger,
	}
}

func (r *RaffleRepositoryImpl) Create(ctx context.Context, entity *raffle.Raffle) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create raffle in database",
			"shop_id", entity.ShopID(),
			"product_id", entity.ProductID(),
			"error", err)
		return fmt.Errorf("failed to create raffle: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set raffle ID: %w", err)
	}
	return nil
}

func (r *RaffleRepositoryImpl) GetByID(ctx context.Context, id uint) (*raffle.Raffle, error) {
	var model models.RaffleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, raffle.ErrRaffleNotFound
		}
		r.logger.Errorw("failed to get raffle by ID", "raffle_id", id, "error", err)
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}

	entity, err := r.mapper.ToDomain(&model)
	if err != nil {
		r.logger.Errorw("failed to map raffle model to entity", "raffle_id", id, "error", err)
		return nil, fmt.Errorf("failed to map raffle: %w", err)
	}
	return entity, nil
}

// WithRaffleTransaction must not be nested for the same raffle: the lock is
// not reentrant.
func (r *RaffleRepositoryImpl) WithRaffleTransaction(ctx context.Context, id uint, fn raffle.TxFunc) error {
	var lastErr error
	for attempt := 1; attempt <= r.retry.MaxAttempts; attempt++ {
		err := r.runOnce(ctx, id, fn)
		if err == nil {
			return nil
		}
		if !isRetriable(err) {
			return err
		}
		lastErr = err

		if attempt == r.retry.MaxAttempts {
			break
		}
		r.logger.Debugw("raffle transaction contended, retrying",
			"raffle_id", id,
			"attempt", attempt,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.retry.backoff(attempt)):
		}
	}

	r.logger.Warnw("raffle transaction retries exhausted",
		"raffle_id", id,
		"attempts", r.retry.MaxAttempts,
		"error", lastErr)
	return fmt.Errorf("%w: %d attempts: %v", raffle.ErrBusy, r.retry.MaxAttempts, lastErr)
}

func (r *RaffleRepositoryImpl) runOnce(ctx context.Context, id uint, fn raffle.TxFunc) error {
	release, err := r.locker.Acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "mysql" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var model models.RaffleModel
		if err := query.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return raffle.ErrRaffleNotFound
			}
			return fmt.Errorf("failed to load raffle: %w", err)
		}

		entity, err := r.mapper.ToDomain(&model)
		if err != nil {
			return err
		}
		before := r.mapper.ToModel(entity)

		if err := fn(db.WithTx(ctx, tx), entity); err != nil {
			return err
		}
		if err := entity.CheckInvariants(); err != nil {
			return err
		}

		after := r.mapper.ToModel(entity)
		if reflect.DeepEqual(before, after) {
			return nil
		}
		return r.compareAndSwap(tx, entity, after)
	})
}

func (r *RaffleRepositoryImpl) compareAndSwap(tx *gorm.DB, entity *raffle.Raffle, model *models.RaffleModel) error {
	nextVersion := model.Version + 1
	result := tx.Model(&models.RaffleModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"sold_tickets":       model.SoldTickets,
			"status":             model.Status,
			"winner_ticket_id":   model.WinnerTicketID,
			"winning_number":     model.WinningNumber,
			"special_conditions": model.SpecialConditions,
			"reject_reason":      model.RejectReason,
			"cancel_reason":      model.CancelReason,
			"activated_at":       model.ActivatedAt,
			"sold_out_at":        model.SoldOutAt,
			"raffle_executed_at": model.RaffleExecutedAt,
			"updated_at":         model.UpdatedAt,
			"version":            nextVersion,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update raffle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return raffle.ErrConcurrentModification
	}

	entity.SetVersion(nextVersion)
	return nil
}

func (r *RaffleRepositoryImpl) ListSoldOutWithoutWinner(ctx context.Context, limit int) ([]uint, error) {
	var ids []uint
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Where("status = ? AND winner_ticket_id IS NULL", vo.StatusSoldOut.String()).
		Order("sold_out_at ASC, id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list sold out raffles", "error", err)
		return nil, fmt.Errorf("failed to list sold out raffles: %w", err)
	}
	return ids, nil
}

func (r *RaffleRepositoryImpl) ExistsNonDraftForProduct(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Where("product_id = ? AND status <> ?", productID, vo.StatusDraft.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check raffles for product: %w", err)
	}
	return count > 0, nil
}

func isRetriable(err error) bool {
	if errors.Is(err, lock.ErrLockTimeout) || errors.Is(err, raffle.ErrConcurrentModification) {
		return true
	}
	return isTransientDBError(err)
}

// isTransientDBError matches lock waits and deadlocks reported by MySQL and SQLite.
func isTransientDBError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"Error 1213", // MySQL deadlock
		"Error 1205", // MySQL lock wait timeout
		"database is locked",
		"SQLITE_BUSY",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
