// Package applicationrepo provides data transfer objects and mapping functions
// for marketplace application persistence.
package applicationrepo

import (
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"

	"github.com/google/uuid"
)

// ApplicationDTO represents the database structure for persisting marketplace
// applications. The (order_id, lab_id) pair is unique: a lab applies to an
// order at most once, and rejection is permanent.
type ApplicationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_applications_order_lab"`
	LabID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_applications_order_lab"`
	Status    int       `gorm:"index"`
	AppliedAt time.Time
}

// TableName specifies the database table name for application entities.
func (ApplicationDTO) TableName() string {
	return "applications"
}

func fromDomain(aggregate *marketplace.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		LabID:     aggregate.LabID().Bytes(),
		Status:    int(aggregate.Status()),
		AppliedAt: aggregate.AppliedAt(),
	}
}

func toDomain(dto ApplicationDTO) (*marketplace.Application, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	labID, err := kernel.UUIDFromBytes(dto.LabID[:])
	if err != nil {
		return nil, err
	}

	return marketplace.RestoreApplication(id, orderID, labID, marketplace.ApplicationStatus(dto.Status), dto.AppliedAt)
}
