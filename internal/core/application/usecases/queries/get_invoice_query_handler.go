package queries

import (
	"context"
	"database/sql"
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetInvoiceQueryHandler reads an order's invoice and its line items from the
// database. The subtotal is summed over the line items at read time, matching
// how the invoice aggregate computes it.
type GetInvoiceQueryHandler struct {
	db *gorm.DB
}

// NewGetInvoiceQueryHandler creates a handler for invoice queries.
func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db}
}

// Handle executes the invoice query. Returns ObjectNotFoundError when the
// order has no invoice yet.
func (h GetInvoiceQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceQuery,
) (GetInvoiceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	var resp GetInvoiceQueryResponse
	var invoiceID, orderID uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			dispute_reason
		FROM invoices
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&invoiceID, &orderID, &status, &resp.DisputeReason)
	if errors.Is(err, sql.ErrNoRows) {
		return GetInvoiceQueryResponse{}, errs.NewObjectNotFoundError("invoice", query.OrderID())
	}
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(invoiceID[:])
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}
	resp.OrderID, err = kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}
	resp.Status = pricing.InvoiceStatus(status).String()

	resp.Items, err = h.lineItems(ctx, invoiceID)
	if err != nil {
		return GetInvoiceQueryResponse{}, err
	}

	resp.Subtotal = decimal.Zero
	for _, item := range resp.Items {
		resp.Subtotal = resp.Subtotal.Add(item.TotalPrice)
	}

	return resp, nil
}

func (h GetInvoiceQueryHandler) lineItems(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceLineItemResponse, error) {
	items := make([]InvoiceLineItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			line_type,
			description,
			quantity,
			unit_price,
			created_at
		FROM invoice_line_items
		WHERE invoice_id = ?
		ORDER BY created_at, id
	`, invoiceID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item InvoiceLineItemResponse
		var id uuid.UUID

		err = rows.Scan(&id, &item.LineType, &item.Description, &item.Quantity, &item.UnitPrice, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
