package queries

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrGetPendingApplicationsQueryIsNotConstructed = errors.New(
	"GetPendingApplicationsQuery must be created via NewGetPendingApplicationsQuery constructor",
)

// GetPendingApplicationsQuery retrieves the applications a doctor can still
// act on for one order.
type GetPendingApplicationsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingApplicationsQuery creates a pending application query for orderID.
func NewGetPendingApplicationsQuery(orderID kernel.UUID) (GetPendingApplicationsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPendingApplicationsQuery{}, err
	}
	return GetPendingApplicationsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingApplicationsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingApplicationsQueryIsNotConstructed)
}

// OrderID returns the order whose applications are requested.
func (q GetPendingApplicationsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPendingApplicationsQueryResponse represents one pending application.
type GetPendingApplicationsQueryResponse struct {
	ID        kernel.UUID
	LabID     kernel.UUID
	AppliedAt time.Time
}
