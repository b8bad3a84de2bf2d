package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
	"dentallab/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddInvoiceOverrideCommandIsNotConstructed = errors.New(
	"AddInvoiceOverrideCommand must be created via NewAddInvoiceOverrideCommand constructor",
)

// AddInvoiceOverrideCommand represents an admin manually adding a line item
// to an invoice, outside the pricing rule engine. The unit price may be
// negative to credit the doctor.
type AddInvoiceOverrideCommand struct { //nolint:recvcheck //using for validation
	invoiceID   kernel.UUID
	actorID     kernel.UUID
	actorRole   kernel.Role
	description string
	quantity    int
	unitPrice   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAddInvoiceOverrideCommand creates a manual line item command.
func NewAddInvoiceOverrideCommand(
	invoiceID kernel.UUID,
	actorID kernel.UUID,
	actorRole kernel.Role,
	description string,
	quantity int,
	unitPrice decimal.Decimal,
) (AddInvoiceOverrideCommand, error) {
	cmd := AddInvoiceOverrideCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(invoiceID.Validate(), actorID.Validate(), actorRole.Validate()); err != nil {
		return AddInvoiceOverrideCommand{}, err
	}
	if description == "" {
		return AddInvoiceOverrideCommand{}, errs.NewValueIsRequiredError("description")
	}
	if quantity <= 0 {
		return AddInvoiceOverrideCommand{}, errs.NewValueIsInvalidError("quantity")
	}

	cmd.invoiceID = invoiceID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	cmd.description = description
	cmd.quantity = quantity
	cmd.unitPrice = unitPrice
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddInvoiceOverrideCommand) Validate() error {
	return c.guard.Validate(ErrAddInvoiceOverrideCommandIsNotConstructed)
}

// InvoiceID returns the invoice receiving the manual item.
func (c AddInvoiceOverrideCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// ActorID returns the acting admin.
func (c AddInvoiceOverrideCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c AddInvoiceOverrideCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Description returns the line item description.
func (c AddInvoiceOverrideCommand) Description() string {
	return c.description
}

// Quantity returns the line item quantity.
func (c AddInvoiceOverrideCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the signed unit price.
func (c AddInvoiceOverrideCommand) UnitPrice() decimal.Decimal {
	return c.unitPrice
}
