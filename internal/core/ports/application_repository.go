package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"
)

// ApplicationRepository defines the persistence contract for marketplace
// application aggregates.
type ApplicationRepository interface {
	// Add persists a new application aggregate to storage.
	Add(ctx context.Context, aggregate *marketplace.Application) error

	// Update persists changes to an existing application aggregate.
	Update(ctx context.Context, aggregate *marketplace.Application) error

	// Get retrieves an application aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*marketplace.Application, error)

	// GetByOrder retrieves all applications for an order regardless of status.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*marketplace.Application, error)

	// GetPendingByLab retrieves a lab's still Pending applications.
	GetPendingByLab(ctx context.Context, labID kernel.UUID) ([]*marketplace.Application, error)

	// GetRejectedOrderIDs retrieves the ids of orders the lab holds a
	// Rejected application for. Marketplace listings exclude these orders.
	GetRejectedOrderIDs(ctx context.Context, labID kernel.UUID) ([]kernel.UUID, error)
}
