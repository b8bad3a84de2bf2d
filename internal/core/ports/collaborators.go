package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/notification"
)

// QCChecklist is the external quality control checklist collaborator.
// The lifecycle engine only consumes a single boolean signal from it.
type QCChecklist interface {
	// AllItemsComplete reports whether every checklist item for the order
	// is marked complete.
	AllItemsComplete(ctx context.Context, orderID kernel.UUID) (bool, error)
}

// OnboardingChecker is the external identity collaborator that knows whether
// a lab's staff account completed onboarding. Marketplace eligibility
// depends on this fact.
type OnboardingChecker interface {
	// IsOnboarded reports whether the lab completed onboarding.
	IsOnboarded(ctx context.Context, labID kernel.UUID) (bool, error)
}

// LabStaffDirectory resolves the staff accounts of a lab. Notification
// recipients for an assigned order are the doctor plus these accounts.
type LabStaffDirectory interface {
	// StaffIDs retrieves the staff account ids for a lab.
	StaffIDs(ctx context.Context, labID kernel.UUID) ([]kernel.UUID, error)
}

// NotificationTransport pushes a notification to the recipient's device.
// Delivery is best effort: a Push failure must never roll back the
// notification record that produced it.
type NotificationTransport interface {
	// Push delivers one notification. Implementations should return quickly
	// and treat downstream failures as their own retry concern.
	Push(ctx context.Context, n *notification.Notification) error
}

// ChangeFeedPublisher publishes entity change events so interested clients
// can refresh their local state. Delivery is at least once; consumers
// deduplicate by entity id and update time.
type ChangeFeedPublisher interface {
	// Publish emits one change event for the given entity.
	Publish(ctx context.Context, event ChangeEvent) error

	// Close releases the underlying transport.
	Close() error
}

// ChangeEvent is a single change-feed record. UpdatedAt is unix milliseconds
// and is distinct for every change to an entity, so (EntityID, UpdatedAt)
// identifies one change across redeliveries.
type ChangeEvent struct {
	EntityType string
	EntityID   kernel.UUID
	Action     string
	UpdatedAt  int64
}
