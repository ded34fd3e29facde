package mappers

import (
	"fmt"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
)

// RaffleMapper handles the conversion between raffle aggregates, tickets and persistence models.
type RaffleMapper interface {
	ToModel(r *raffle.Raffle) *models.RaffleModel
	ToDomain(model *models.RaffleModel) (*raffle.Raffle, error)
	TicketToModel(t *raffle.Ticket) *models.RaffleTicketModel
	TicketToDomain(model *models.RaffleTicketModel) (*raffle.Ticket, error)
	TicketsToDomain(list []*models.RaffleTicketModel) ([]*raffle.Ticket, error)
}

type RaffleMapperImpl struct{}

func NewRaffleMapper() RaffleMapper {
	return &RaffleMapperImpl{}
}

func (m *RaffleMapperImpl) ToModel(r *raffle.Raffle) *models.RaffleModel {
	return &models.RaffleModel{
		ID:                r.ID(),
		ShopID:            r.ShopID(),
		ProductID:         r.ProductID(),
		ProductValueCents: r.ProductValueCents(),
		TotalTickets:      r.TotalTickets(),
		SoldTickets:       r.SoldTickets(),
		Status:            r.Status().String(),
		WinnerTicketID:    r.WinnerTicketID(),
		WinningNumber:     r.WinningNumber(),
		RequiresDeposit:   r.RequiresDeposit(),
		SpecialConditions: r.SpecialConditions(),
		RejectReason:      r.RejectReason(),
		CancelReason:      r.CancelReason(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
		ActivatedAt:       r.ActivatedAt(),
		SoldOutAt:         r.SoldOutAt(),
		RaffleExecutedAt:  r.RaffleExecutedAt(),
	}
}

func (m *RaffleMapperImpl) ToDomain(model *models.RaffleModel) (*raffle.Raffle, error) {
	if model == nil {
		return nil, nil
	}
	status, err := vo.ParseRaffleStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("raffle %d: %w", model.ID, err)
	}
	return raffle.ReconstructRaffle(
		model.ID,
		model.ShopID,
		model.ProductID,
		model.ProductValueCents,
		model.TotalTickets,
		model.SoldTickets,
		status,
		model.WinnerTicketID,
		model.WinningNumber,
		model.RequiresDeposit,
		model.SpecialConditions,
		model.RejectReason,
		model.CancelReason,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
		model.ActivatedAt,
		model.SoldOutAt,
		model.RaffleExecutedAt,
	)
}

func (m *RaffleMapperImpl) TicketToModel(t *raffle.Ticket) *models.RaffleTicketModel {
	return &models.RaffleTicketModel{
		ID:               t.ID(),
		RaffleID:         t.RaffleID(),
		Number:           t.Number(),
		OwnerID:          t.OwnerID(),
		Status:           t.Status().String(),
		ReservationID:    t.ReservationID(),
		PaymentReference: t.PaymentReference(),
		PurchasedAt:      t.PurchasedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

func (m *RaffleMapperImpl) TicketToDomain(model *models.RaffleTicketModel) (*raffle.Ticket, error) {
	if model == nil {
		return nil, nil
	}
	status, err := vo.ParseTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	return raffle.ReconstructTicket(
		model.ID,
		model.RaffleID,
		model.Number,
		model.OwnerID,
		status,
		model.ReservationID,
		model.PaymentReference,
		model.PurchasedAt,
		model.UpdatedAt,
	)
}

func (m *RaffleMapperImpl) TicketsToDomain(list []*models.RaffleTicketModel) ([]*raffle.Ticket, error) {
	tickets := make([]*raffle.Ticket, 0, len(list))
	for _, model := range list {
		t, err := m.TicketToDomain(model)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
