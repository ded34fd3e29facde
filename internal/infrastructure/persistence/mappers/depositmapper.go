package mappers

import (
	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
)

type DepositMapper interface {
	ToModel(d *deposit.Deposit) *models.DepositModel
	ToDomain(model *models.DepositModel) (*deposit.Deposit, error)
}

type DepositMapperImpl struct{}

func NewDepositMapper() DepositMapper {
	return &DepositMapperImpl{}
}

func (m *DepositMapperImpl) ToModel(d *deposit.Deposit) *models.DepositModel {
	return &models.DepositModel{
		ID:          d.ID(),
		RaffleID:    d.RaffleID(),
		ShopID:      d.ShopID(),
		AmountCents: d.AmountCents(),
		Status:      d.Status().String(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}

func (m *DepositMapperImpl) ToDomain(model *models.DepositModel) (*deposit.Deposit, error) {
	if model == nil {
		return nil, nil
	}
	return deposit.ReconstructDeposit(
		model.ID,
		model.RaffleID,
		model.ShopID,
		model.AmountCents,
		deposit.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
