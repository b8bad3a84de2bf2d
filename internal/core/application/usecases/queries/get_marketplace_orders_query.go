// Package queries contains read operations for the query side of the CQRS
// architecture. Query handlers read the database directly and return plain
// response structs, bypassing the domain aggregates.
package queries

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetMarketplaceOrdersQueryIsNotConstructed = errors.New(
	"GetMarketplaceOrdersQuery must be created via NewGetMarketplaceOrdersQuery constructor",
)

// GetMarketplaceOrdersQuery retrieves the orders a lab can currently apply
// to: open marketplace orders minus the ones this lab was rejected on.
type GetMarketplaceOrdersQuery struct {
	labID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMarketplaceOrdersQuery creates a marketplace listing query for labID.
func NewGetMarketplaceOrdersQuery(labID kernel.UUID) (GetMarketplaceOrdersQuery, error) {
	if err := labID.Validate(); err != nil {
		return GetMarketplaceOrdersQuery{}, err
	}
	return GetMarketplaceOrdersQuery{
		labID: labID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMarketplaceOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMarketplaceOrdersQueryIsNotConstructed)
}

// LabID returns the lab browsing the marketplace.
func (q GetMarketplaceOrdersQuery) LabID() kernel.UUID {
	return q.labID
}

// GetMarketplaceOrdersQueryResponse represents one open marketplace order.
type GetMarketplaceOrdersQueryResponse struct {
	ID              kernel.UUID
	RestorationType string
	Urgency         string
	TargetBudget    *decimal.Decimal
	CreatedAt       time.Time
}
