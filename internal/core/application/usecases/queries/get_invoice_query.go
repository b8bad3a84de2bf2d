package queries

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
)

// GetInvoiceQuery retrieves the invoice of an order together with its line items.
type GetInvoiceQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetInvoiceQuery creates an invoice query for orderID.
func NewGetInvoiceQuery(orderID kernel.UUID) (GetInvoiceQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

// OrderID returns the order whose invoice is requested.
func (q GetInvoiceQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetInvoiceQueryResponse represents an invoice with its line items and
// computed subtotal.
type GetInvoiceQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	Status        string
	DisputeReason *string
	Subtotal      decimal.Decimal
	Items         []InvoiceLineItemResponse
}

// InvoiceLineItemResponse represents one line of an invoice.
type InvoiceLineItemResponse struct {
	ID          kernel.UUID
	LineType    string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}
