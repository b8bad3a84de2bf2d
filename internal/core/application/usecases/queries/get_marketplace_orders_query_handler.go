package queries

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetMarketplaceOrdersQueryHandler lists the marketplace for one lab.
//
// Visibility mirrors the application rules: the lab must be onboarded, the
// order must await auto assignment with no lab assigned, and orders the lab
// holds a Rejected application for are filtered out.
type GetMarketplaceOrdersQueryHandler struct {
	db         *gorm.DB
	onboarding ports.OnboardingChecker
}

// NewGetMarketplaceOrdersQueryHandler creates a handler for marketplace listings.
func NewGetMarketplaceOrdersQueryHandler(db *gorm.DB, onboarding ports.OnboardingChecker) GetMarketplaceOrdersQueryHandler {
	return GetMarketplaceOrdersQueryHandler{db: db, onboarding: onboarding}
}

// Handle executes the marketplace listing query.
func (h GetMarketplaceOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMarketplaceOrdersQuery,
) ([]GetMarketplaceOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	onboarded, err := h.onboarding.IsOnboarded(ctx, query.LabID())
	if err != nil {
		return nil, errs.NewOperationFailedError("onboarding lookup", err)
	}
	if !onboarded {
		return nil, errs.NewAuthorizationError(query.LabID().String(), "browse marketplace")
	}

	orders := make([]GetMarketplaceOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restoration_type,
			urgency,
			target_budget,
			created_at
		FROM orders
		WHERE auto_assign_pending = TRUE
		  AND assigned_lab_id IS NULL
		  AND id NOT IN (
			SELECT order_id FROM applications
			WHERE lab_id = ? AND status = ?
		  )
		ORDER BY created_at
	`, query.LabID().Bytes(), marketplace.ApplicationRejected).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetMarketplaceOrdersQueryResponse
		var id uuid.UUID
		var urgency int
		var budget decimal.NullDecimal

		err = rows.Scan(&id, &resp.RestorationType, &urgency, &budget, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Urgency = order.Urgency(urgency).String()
		if budget.Valid {
			resp.TargetBudget = &budget.Decimal
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
