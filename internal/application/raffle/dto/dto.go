package dto

import (
	"time"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
)

type RaffleDTO struct {
	ID                    uint       `json:"id"`
	ShopID                uint       `json:"shop_id"`
	ProductID             uint       `json:"product_id"`
	ProductValueCents     int64      `json:"product_value_cents"`
	TotalTickets          int        `json:"total_tickets"`
	SoldTickets           int        `json:"sold_tickets"`
	RemainingTickets      int        `json:"remaining_tickets"`
	Status                string     `json:"status"`
	RequiresDeposit       bool       `json:"requires_deposit"`
	SpecialConditions     string     `json:"special_conditions,omitempty"`
	SpecialConditionsHTML string     `json:"special_conditions_html,omitempty"`
	RejectReason          string     `json:"reject_reason,omitempty"`
	CancelReason          string     `json:"cancel_reason,omitempty"`
	WinnerTicketID        *uint      `json:"winner_ticket_id,omitempty"`
	WinningNumber         *int       `json:"winning_number,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	ActivatedAt           *time.Time `json:"activated_at,omitempty"`
	SoldOutAt             *time.Time `json:"sold_out_at,omitempty"`
	RaffleExecutedAt      *time.Time `json:"raffle_executed_at,omitempty"`
}

func ToRaffleDTO(r *raffle.Raffle) *RaffleDTO {
	if r == nil {
		return nil
	}
	return &RaffleDTO{
		ID:                r.ID(),
		ShopID:            r.ShopID(),
		ProductID:         r.ProductID(),
		ProductValueCents: r.ProductValueCents(),
		TotalTickets:      r.TotalTickets(),
		SoldTickets:       r.SoldTickets(),
		RemainingTickets:  r.RemainingTickets(),
		Status:            r.Status().String(),
		RequiresDeposit:   r.RequiresDeposit(),
		SpecialConditions: r.SpecialConditions(),
		RejectReason:      r.RejectReason(),
		CancelReason:      r.CancelReason(),
		WinnerTicketID:    r.WinnerTicketID(),
		WinningNumber:     r.WinningNumber(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
		ActivatedAt:       r.ActivatedAt(),
		SoldOutAt:         r.SoldOutAt(),
		RaffleExecutedAt:  r.RaffleExecutedAt(),
	}
}

type TicketDTO struct {
	ID            uint      `json:"id"`
	RaffleID      uint      `json:"raffle_id"`
	Number        int       `json:"number"`
	OwnerID       string    `json:"owner_id"`
	Status        string    `json:"status"`
	ReservationID string    `json:"reservation_id"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

func ToTicketDTO(t *raffle.Ticket) *TicketDTO {
	return &TicketDTO{
		ID:            t.ID(),
		RaffleID:      t.RaffleID(),
		Number:        t.Number(),
		OwnerID:       t.OwnerID(),
		Status:        t.Status().String(),
		ReservationID: t.ReservationID(),
		PurchasedAt:   t.PurchasedAt(),
	}
}

func ToTicketDTOs(list []*raffle.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(list))
	for _, t := range list {
		out = append(out, ToTicketDTO(t))
	}
	return out
}

// ReservationDTO is the result of a confirmed payment.
type ReservationDTO struct {
	RaffleID         uint   `json:"raffle_id"`
	ReservationID    string `json:"reservation_id"`
	PaymentReference string `json:"payment_reference,omitempty"`
	TicketNumbers    []int  `json:"ticket_numbers"`
	RemainingTickets int    `json:"remaining_tickets"`
	Status           string `json:"status"`
	// Replayed is true when the payment reference was already processed.
	Replayed bool `json:"replayed"`
}

type WinnerDTO struct {
	RaffleID         uint      `json:"raffle_id"`
	WinnerTicketID   uint      `json:"winner_ticket_id"`
	WinningNumber    int       `json:"winning_number"`
	WinnerOwnerID    string    `json:"winner_owner_id"`
	RaffleExecutedAt time.Time `json:"raffle_executed_at"`
	// AlreadyDrawn is true when the raffle was finished before this call.
	AlreadyDrawn bool `json:"already_drawn"`
}

type AvailabilityDTO struct {
	RaffleID         uint   `json:"raffle_id"`
	RemainingTickets int    `json:"remaining_tickets"`
	Status           string `json:"status"`
	Cached           bool   `json:"cached"`
}
