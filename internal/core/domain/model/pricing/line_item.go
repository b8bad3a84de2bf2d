package pricing

import (
	"errors"
	"fmt"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through a factory function.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem, NewAdminOverrideLineItem or RestoreLineItem")

// LineItem is one priced entry of an invoice, traceable to the rule and
// lifecycle event that produced it. Line items are immutable; the invoice
// aggregate decides whether appending is currently allowed.
type LineItem struct {
	id          kernel.UUID
	invoiceID   kernel.UUID
	lineType    string
	description string
	quantity    int
	unitPrice   decimal.Decimal
	totalPrice  decimal.Decimal
	sourceEvent SourceEvent
	ruleApplied *kernel.UUID
	createdAt   time.Time

	isConstructed bool
}

// NewLineItem creates a rule-produced line item.
//
// The id must be derived deterministically from the invoice, source event and
// rule (see kernel.DeterministicUUID) so that recomputing the same billing
// evaluation yields byte-identical items and retries stay idempotent.
func NewLineItem(
	id kernel.UUID,
	invoiceID kernel.UUID,
	lineType string,
	description string,
	quantity int,
	unitPrice decimal.Decimal,
	sourceEvent SourceEvent,
	ruleApplied *kernel.UUID,
	createdAt time.Time,
) (LineItem, error) {
	item := LineItem{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setInvoiceID(invoiceID),
		item.setLineType(lineType),
		item.setQuantity(quantity),
		sourceEvent.Validate(),
	); err != nil {
		return LineItem{}, err
	}

	if ruleApplied != nil {
		if err := ruleApplied.Validate(); err != nil {
			return LineItem{}, err
		}
	}

	item.description = description
	item.unitPrice = unitPrice
	item.totalPrice = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	item.sourceEvent = sourceEvent
	item.ruleApplied = ruleApplied
	item.createdAt = createdAt
	return item, nil
}

// NewAdminOverrideLineItem creates a manual line item added by an admin.
// Override items carry no rule reference.
func NewAdminOverrideLineItem(
	id kernel.UUID,
	invoiceID kernel.UUID,
	description string,
	quantity int,
	unitPrice decimal.Decimal,
	createdAt time.Time,
) (LineItem, error) {
	if description == "" {
		return LineItem{}, errs.NewValueIsRequiredError("description")
	}
	return NewLineItem(id, invoiceID, "AdminOverride", description, quantity, unitPrice, SourceAdminOverride, nil, createdAt)
}

// RestoreLineItem reconstructs a line item from persistence, including its
// stored total price.
func RestoreLineItem(
	id kernel.UUID,
	invoiceID kernel.UUID,
	lineType string,
	description string,
	quantity int,
	unitPrice decimal.Decimal,
	totalPrice decimal.Decimal,
	sourceEvent SourceEvent,
	ruleApplied *kernel.UUID,
	createdAt time.Time,
) (LineItem, error) {
	item, err := NewLineItem(id, invoiceID, lineType, description, quantity, unitPrice, sourceEvent, ruleApplied, createdAt)
	if err != nil {
		return LineItem{}, err
	}
	item.totalPrice = totalPrice
	return item, nil
}

// Validate ensures the line item was constructed through a factory.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// InvoiceID returns the owning invoice.
func (li LineItem) InvoiceID() kernel.UUID {
	return li.invoiceID
}

// LineType returns the rule type name or "AdminOverride".
func (li LineItem) LineType() string {
	return li.lineType
}

// Description returns the human-readable description.
func (li LineItem) Description() string {
	return li.description
}

// Quantity returns the billed quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the signed price per unit.
func (li LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// TotalPrice returns the signed total for the line.
func (li LineItem) TotalPrice() decimal.Decimal {
	return li.totalPrice
}

// SourceEvent returns the lifecycle event that produced the line.
func (li LineItem) SourceEvent() SourceEvent {
	return li.sourceEvent
}

// RuleApplied returns the producing rule id, or nil for overrides.
func (li LineItem) RuleApplied() *kernel.UUID {
	return li.ruleApplied
}

// CreatedAt returns when the line was produced.
func (li LineItem) CreatedAt() time.Time {
	return li.createdAt
}

// IsEqual compares two line items field by field. Used by tests to assert
// idempotent recomputation.
func (li LineItem) IsEqual(other LineItem) bool {
	if !li.id.IsEqual(other.id) || !li.invoiceID.IsEqual(other.invoiceID) {
		return false
	}
	if li.lineType != other.lineType || li.description != other.description || li.quantity != other.quantity {
		return false
	}
	if !li.unitPrice.Equal(other.unitPrice) || !li.totalPrice.Equal(other.totalPrice) {
		return false
	}
	if li.sourceEvent != other.sourceEvent || !li.createdAt.Equal(other.createdAt) {
		return false
	}
	if (li.ruleApplied == nil) != (other.ruleApplied == nil) {
		return false
	}
	if li.ruleApplied != nil && !li.ruleApplied.IsEqual(*other.ruleApplied) {
		return false
	}
	return true
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setInvoiceID(invoiceID kernel.UUID) error {
	if err := invoiceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("invoiceId", err)
	}
	li.invoiceID = invoiceID
	return nil
}

func (li *LineItem) setLineType(lineType string) error {
	if lineType == "" {
		return errs.NewValueIsRequiredError("lineType")
	}
	li.lineType = lineType
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}
