// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit trail.
package auditrepo

import (
	"time"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents one persisted audit entry. Snapshots are stored as raw
// JSON; a nil old value marks a creation, a nil new value marks a deletion.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;index"`
	Action     string
	EntityType string    `gorm:"index:idx_audit_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_audit_entity"`
	OldValue   []byte    `gorm:"type:jsonb"`
	NewValue   []byte    `gorm:"type:jsonb"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.ID().Bytes(),
		ActorID:    entry.ActorID().Bytes(),
		Action:     entry.Action(),
		EntityType: entry.EntityType(),
		EntityID:   entry.EntityID().Bytes(),
		OldValue:   entry.OldValue(),
		NewValue:   entry.NewValue(),
		CreatedAt:  entry.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(
		id,
		actorID,
		dto.Action,
		dto.EntityType,
		entityID,
		dto.OldValue,
		dto.NewValue,
		dto.CreatedAt,
	)
}
