package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel is insert-only.
type AuditLogModel struct {
	ID             uint   `gorm:"primaryKey"`
	ActorID        string `gorm:"size:64;not null;index"`
	Action         string `gorm:"size:50;not null"`
	EntityType     string `gorm:"size:50;not null;index:idx_audit_entity,priority:1"`
	EntityID       uint   `gorm:"not null;index:idx_audit_entity,priority:2"`
	PreviousStatus string `gorm:"size:20"`
	NewStatus      string `gorm:"size:20"`
	Reason         string `gorm:"size:500"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
