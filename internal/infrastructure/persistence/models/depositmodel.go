package models

import "time"

type DepositModel struct {
	ID          uint   `gorm:"primaryKey"`
	RaffleID    uint   `gorm:"not null;uniqueIndex"`
	ShopID      uint   `gorm:"not null;index"`
	AmountCents int64  `gorm:"not null"`
	Status      string `gorm:"size:20;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DepositModel) TableName() string {
	return "raffle_deposits"
}
