package models

import "time"

// ShopModel mirrors shops owned by the shop-management service.
type ShopModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Blocked   bool   `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

func (ShopModel) TableName() string {
	return "shops"
}
