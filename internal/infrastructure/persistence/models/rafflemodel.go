package models

import "time"

type RaffleModel struct {
	ID                uint   `gorm:"primaryKey"`
	ShopID            uint   `gorm:"not null;index"`
	ProductID         uint   `gorm:"not null;index"`
	ProductValueCents int64  `gorm:"not null"`
	TotalTickets      int    `gorm:"not null"`
	SoldTickets       int    `gorm:"not null;default:0"`
	Status            string `gorm:"size:20;not null;index"`
	WinnerTicketID    *uint
	WinningNumber     *int
	RequiresDeposit   bool   `gorm:"not null;default:false"`
	SpecialConditions string `gorm:"type:text"`
	RejectReason      string `gorm:"size:500"`
	CancelReason      string `gorm:"size:500"`
	Version           int    `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ActivatedAt       *time.Time
	SoldOutAt         *time.Time
	RaffleExecutedAt  *time.Time
}

func (RaffleModel) TableName() string {
	return "raffles"
}

// RaffleTicketModel rows are unique per (raffle_id, number).
type RaffleTicketModel struct {
	ID               uint   `gorm:"primaryKey"`
	RaffleID         uint   `gorm:"not null;uniqueIndex:idx_raffle_number,priority:1;index:idx_raffle_payment,priority:1"`
	Number           int    `gorm:"not null;uniqueIndex:idx_raffle_number,priority:2"`
	OwnerID          string `gorm:"size:64;not null;index"`
	Status           string `gorm:"size:20;not null"`
	ReservationID    string `gorm:"size:32;not null;index"`
	PaymentReference string `gorm:"size:128;index:idx_raffle_payment,priority:2"`
	PurchasedAt      time.Time
	UpdatedAt        time.Time
}

func (RaffleTicketModel) TableName() string {
	return "raffle_tickets"
}
