package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
)

// PricingRuleRepository defines the persistence contract for pricing rules.
type PricingRuleRepository interface {
	// Upsert inserts the rule or replaces an existing rule with the same id.
	Upsert(ctx context.Context, rule *pricing.Rule) error

	// Get retrieves a rule by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pricing.Rule, error)

	// GetAll retrieves every rule, active and inactive.
	GetAll(ctx context.Context) ([]*pricing.Rule, error)

	// GetActive retrieves all active rules for engine evaluation.
	GetActive(ctx context.Context) ([]*pricing.Rule, error)

	// Delete removes a rule by id.
	Delete(ctx context.Context, id kernel.UUID) error
}

// InvoiceRepository defines the persistence contract for invoice aggregates
// and their line items.
type InvoiceRepository interface {
	// Add persists a new invoice aggregate to storage.
	Add(ctx context.Context, aggregate *pricing.Invoice) error

	// Update persists changes to an existing invoice aggregate, including
	// newly appended line items.
	Update(ctx context.Context, aggregate *pricing.Invoice) error

	// Get retrieves an invoice aggregate with its line items.
	Get(ctx context.Context, id kernel.UUID) (*pricing.Invoice, error)

	// GetByOrder retrieves the invoice belonging to an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*pricing.Invoice, error)
}
