package queries

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status history from the database.
// Entries come back oldest first so the list reads as a timeline.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the order history query.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			old_status,
			new_status,
			changed_by,
			changed_at,
			notes
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderHistoryQueryResponse
		var oldStatus, newStatus int
		var changedBy uuid.UUID

		err = rows.Scan(&oldStatus, &newStatus, &changedBy, &resp.ChangedAt, &resp.Notes)
		if err != nil {
			return nil, err
		}

		actorID, idErr := kernel.UUIDFromBytes(changedBy[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ChangedBy = actorID
		resp.OldStatus = order.Status(oldStatus).String()
		resp.NewStatus = order.Status(newStatus).String()
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
