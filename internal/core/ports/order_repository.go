package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AssignLabConditionally atomically assigns labID to the order only while
	// no lab is assigned yet. Returns false without error when the conditional
	// write matched no row, meaning another lab won the race.
	AssignLabConditionally(ctx context.Context, aggregate *order.Order) (bool, error)

	// GetMarketplaceVisible retrieves all orders currently open on the
	// marketplace, awaiting auto assignment with no assigned lab.
	GetMarketplaceVisible(ctx context.Context) ([]*order.Order, error)

	// GetDeliveredUnconfirmed retrieves Delivered orders still awaiting the
	// doctor's confirmation. Used by the SLA sweep job.
	GetDeliveredUnconfirmed(ctx context.Context) ([]*order.Order, error)
}

// OrderHistoryRepository defines the persistence contract for the append-only
// status history trail. One row per accepted transition, never updated.
type OrderHistoryRepository interface {
	// Add appends a history entry.
	Add(ctx context.Context, entry order.HistoryEntry) error

	// GetByOrder retrieves an order's history ordered by change time.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)
}
