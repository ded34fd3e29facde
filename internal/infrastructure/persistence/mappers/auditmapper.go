package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
)

// AuditMapper only maps toward storage; the audit store is never read back here.
type AuditMapper interface {
	ToModel(e *audit.Entry) (*models.AuditLogModel, error)
}

type AuditMapperImpl struct{}

func NewAuditMapper() AuditMapper {
	return &AuditMapperImpl{}
}

func (m *AuditMapperImpl) ToModel(e *audit.Entry) (*models.AuditLogModel, error) {
	var metadataJSON datatypes.JSON
	if meta := e.Metadata(); len(meta) > 0 {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
		metadataJSON = datatypes.JSON(raw)
	}

	return &models.AuditLogModel{
		ActorID:        e.ActorID(),
		Action:         e.Action(),
		EntityType:     e.EntityType(),
		EntityID:       e.EntityID(),
		PreviousStatus: e.PreviousStatus(),
		NewStatus:      e.NewStatus(),
		Reason:         e.Reason(),
		Metadata:       metadataJSON,
		CreatedAt:      e.CreatedAt(),
	}, nil
}
