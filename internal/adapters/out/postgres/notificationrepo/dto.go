// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence.
package notificationrepo

import (
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents one persisted notification record. Unsent rows
// have a NULL sent_at and are drained by the delivery job.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Body        string
	URL         string
	SentAt      *time.Time `gorm:"index"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          aggregate.ID().Bytes(),
		RecipientID: aggregate.RecipientID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		Title:       aggregate.Title(),
		Body:        aggregate.Body(),
		URL:         aggregate.URL(),
		SentAt:      aggregate.SentAt(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		recipientID,
		orderID,
		dto.Title,
		dto.Body,
		dto.URL,
		dto.SentAt,
		dto.CreatedAt,
	)
}
