package models

import "time"

type ProductModel struct {
	ID              uint   `gorm:"primaryKey"`
	ShopID          uint   `gorm:"not null;index"`
	Name            string `gorm:"size:200;not null"`
	Description     string `gorm:"type:text"`
	ValueCents      int64  `gorm:"not null"`
	HeightCM        int    `gorm:"not null"`
	WidthCM         int    `gorm:"not null"`
	DepthCM         int    `gorm:"not null"`
	RequiresDeposit bool   `gorm:"not null;default:false"`
	Status          string `gorm:"size:20;not null;index"`
	Version         int    `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ProductModel) TableName() string {
	return "products"
}
