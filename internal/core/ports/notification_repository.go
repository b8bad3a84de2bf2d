package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// records.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists changes to an existing notification record.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetUnsent retrieves notifications not yet delivered, up to limit.
	// Used by the delivery job to drain the pending queue.
	GetUnsent(ctx context.Context, limit int) ([]*notification.Notification, error)
}
