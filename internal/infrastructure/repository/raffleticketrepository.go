package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/mappers"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
	"github.com/rafflehub/rafflehub/internal/shared/db"
	apperrors "github.com/rafflehub/rafflehub/internal/shared/errors"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

const ticketInsertBatchSize = 500

type RaffleTicketRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RaffleMapper
	logger logger.Interface
}

func NewRaffleTicketRepository(db *gorm.DB, logger logger.Interface) *RaffleTicketRepositoryImpl {
	return &RaffleTicketRepositoryImpl{
		db:     db,
		mapper: mappers.NewRaffleMapper(),
		logger: logger,
	}
}

func (r *RaffleTicketRepositoryImpl) CreateTickets(ctx context.Context, tickets []*raffle.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	list := make([]*models.RaffleTicketModel, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, r.mapper.TicketToModel(t))
	}

	if err := db.GetTxFromContext(ctx, r.db).CreateInBatches(list, ticketInsertBatchSize).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return fmt.Errorf("%w: raffle %d: %v", raffle.ErrDuplicateTicketNumber, tickets[0].RaffleID(), err)
		}
		return fmt.Errorf("failed to create tickets: %w", err)
	}

	for i, model := range list {
		if err := tickets[i].SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set ticket ID: %w", err)
		}
	}
	return nil
}

func (r *RaffleTicketRepositoryImpl) ListTicketsByRaffle(ctx context.Context, raffleID uint, offset, limit int) ([]*raffle.Ticket, int64, error) {
	var total int64
	query := db.GetTxFromContext(ctx, r.db).Model(&models.RaffleTicketModel{}).Where("raffle_id = ?", raffleID)
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "raffle_id", raffleID, "error", err)
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var list []*models.RaffleTicketModel
	if err := query.Order("number ASC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list tickets", "raffle_id", raffleID, "error", err)
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.TicketsToDomain(list)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *RaffleTicketRepositoryImpl) GetByRaffleAndNumber(ctx context.Context, raffleID uint, number int) (*raffle.Ticket, error) {
	var model models.RaffleTicketModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ? AND number = ?", raffleID, number).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: raffle %d number %d", raffle.ErrTicketNotFound, raffleID, number)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.TicketToDomain(&model)
}

func (r *RaffleTicketRepositoryImpl) GetByID(ctx context.Context, id uint) (*raffle.Ticket, error) {
	var model models.RaffleTicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", raffle.ErrTicketNotFound, id)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.TicketToDomain(&model)
}

func (r *RaffleTicketRepositoryImpl) FindByPaymentReference(ctx context.Context, raffleID uint, paymentReference string) ([]*raffle.Ticket, error) {
	if paymentReference == "" {
		return nil, nil
	}
	var list []*models.RaffleTicketModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ? AND payment_reference = ?", raffleID, paymentReference).
		Order("number ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets by payment reference: %w", err)
	}
	return r.mapper.TicketsToDomain(list)
}

func (r *RaffleTicketRepositoryImpl) UpdateStatus(ctx context.Context, t *raffle.Ticket) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleTicketModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"status":     t.Status().String(),
			"updated_at": t.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", raffle.ErrTicketNotFound, t.ID())
	}
	return nil
}

func (r *RaffleTicketRepositoryImpl) RefundSold(ctx context.Context, raffleID uint, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleTicketModel{}).
		Where("raffle_id = ? AND status = ?", raffleID, vo.TicketStatusSold.String()).
		Updates(map[string]interface{}{
			"status":     vo.TicketStatusRefunded.String(),
			"updated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to refund tickets", "raffle_id", raffleID, "error", result.Error)
		return 0, fmt.Errorf("failed to refund tickets: %w", result.Error)
	}
	return result.RowsAffected, nil
}
