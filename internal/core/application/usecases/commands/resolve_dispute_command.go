package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand represents an admin's resolution of an invoice
// dispute, lifting the line item freeze.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a dispute resolution command.
func NewResolveDisputeCommand(invoiceID, actorID kernel.UUID, actorRole kernel.Role) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(invoiceID.Validate(), actorID.Validate(), actorRole.Validate()); err != nil {
		return ResolveDisputeCommand{}, err
	}

	cmd.invoiceID = invoiceID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// InvoiceID returns the invoice whose dispute is resolved.
func (c ResolveDisputeCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// ActorID returns the resolving admin.
func (c ResolveDisputeCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the resolving user's role.
func (c ResolveDisputeCommand) ActorRole() kernel.Role {
	return c.actorRole
}
