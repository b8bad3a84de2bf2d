package pricing

import (
	"errors"
	"fmt"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// minDisputeReasonLength is the minimum length of a dispute reason.
// Raising a dispute is a heavyweight action (it freezes the invoice), so a
// throwaway reason is not accepted.
const minDisputeReasonLength = 20

// ErrInvoiceIsNotConstructed is returned when an Invoice was not created
// through NewInvoice or RestoreInvoice.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

// Invoice is the billing aggregate for one work order. Line items accumulate
// as billable lifecycle events fire; the dispute freeze invariant blocks all
// line item mutation between dispute raise and admin resolution.
type Invoice struct {
	id            kernel.UUID
	orderID       kernel.UUID
	status        InvoiceStatus
	disputeReason *string
	items         []LineItem
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewInvoice creates an empty Open invoice for an order.
func NewInvoice(id, orderID kernel.UUID) (*Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	now := time.Now().UTC()
	return &Invoice{
		id:            id,
		orderID:       orderID,
		status:        InvoiceOpen,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreInvoice reconstructs an invoice with its line items from persistence.
func RestoreInvoice(
	id, orderID kernel.UUID,
	status InvoiceStatus,
	disputeReason *string,
	items []LineItem,
	createdAt, updatedAt time.Time,
) (*Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Invoice{
		id:            id,
		orderID:       orderID,
		status:        status,
		disputeReason: disputeReason,
		items:         items,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Invoice was constructed through a factory.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// OrderID returns the billed order.
func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

// Status returns the dispute state.
func (i *Invoice) Status() InvoiceStatus {
	return i.status
}

// DisputeReason returns the reason of the most recent dispute, or nil.
func (i *Invoice) DisputeReason() *string {
	return i.disputeReason
}

// Items returns the accumulated line items in append order.
func (i *Invoice) Items() []LineItem {
	return i.items
}

// CreatedAt returns the invoice creation time.
func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt returns the time of the last accepted mutation.
func (i *Invoice) UpdatedAt() time.Time {
	return i.updatedAt
}

// Subtotal returns the signed sum of all line item totals.
func (i *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range i.items {
		sum = sum.Add(item.TotalPrice())
	}
	return sum
}

// IsFrozen reports whether the dispute freeze is in effect.
func (i *Invoice) IsFrozen() bool {
	return i.status == InvoiceDisputed
}

// AppendLineItems adds line items produced by a billing evaluation or an
// admin override.
//
// While the invoice is Disputed every append fails with
// GuardViolation(InvoiceFrozen). Items whose deterministic id is already
// present are skipped, which makes retried evaluations idempotent.
func (i *Invoice) AppendLineItems(items ...LineItem) error {
	if err := i.Validate(); err != nil {
		return err
	}

	if i.IsFrozen() {
		return errs.NewGuardViolationError(errs.GuardInvoiceFrozen,
			fmt.Sprintf("invoice %s has an unresolved dispute", i.id))
	}

	appended := false
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.InvoiceID().IsEqual(i.id) {
			return errs.NewValueIsInvalidErrorWithCause("invoiceId",
				fmt.Errorf("line item %s belongs to invoice %s", item.ID(), item.InvoiceID()))
		}
		if i.hasItem(item.ID()) {
			continue
		}
		i.items = append(i.items, item)
		appended = true
	}

	if appended {
		i.updatedAt = time.Now().UTC()
	}
	return nil
}

// RaiseDispute freezes the invoice pending admin resolution.
// The reason must carry at least 20 characters.
func (i *Invoice) RaiseDispute(reason string) error {
	if err := i.Validate(); err != nil {
		return err
	}

	if len(reason) < minDisputeReasonLength {
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("dispute reason must be at least %d characters", minDisputeReasonLength))
	}

	if i.status == InvoiceDisputed {
		return errs.NewGuardViolationError(errs.GuardInvoiceFrozen, "a dispute is already open")
	}

	i.status = InvoiceDisputed
	i.disputeReason = &reason
	i.updatedAt = time.Now().UTC()
	return nil
}

// ResolveDispute lifts the freeze. Only a Disputed invoice can be resolved.
func (i *Invoice) ResolveDispute() error {
	if err := i.Validate(); err != nil {
		return err
	}

	if i.status != InvoiceDisputed {
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%s invoice has no dispute to resolve", i.status))
	}

	i.status = InvoiceResolved
	i.updatedAt = time.Now().UTC()
	return nil
}

func (i *Invoice) hasItem(id kernel.UUID) bool {
	for _, item := range i.items {
		if item.ID().IsEqual(id) {
			return true
		}
	}
	return false
}
