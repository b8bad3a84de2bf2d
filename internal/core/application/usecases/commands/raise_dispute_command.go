package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrRaiseDisputeCommandIsNotConstructed = errors.New(
	"RaiseDisputeCommand must be created via NewRaiseDisputeCommand constructor",
)

// RaiseDisputeCommand represents a request to dispute an invoice. The
// reason length requirement is enforced by the invoice aggregate.
type RaiseDisputeCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role
	reason    string

	guard guard.ConstructorGuard
}

// NewRaiseDisputeCommand creates a dispute raise command.
func NewRaiseDisputeCommand(
	invoiceID kernel.UUID,
	actorID kernel.UUID,
	actorRole kernel.Role,
	reason string,
) (RaiseDisputeCommand, error) {
	cmd := RaiseDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(invoiceID.Validate(), actorID.Validate(), actorRole.Validate()); err != nil {
		return RaiseDisputeCommand{}, err
	}

	cmd.invoiceID = invoiceID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseDisputeCommand) Validate() error {
	return c.guard.Validate(ErrRaiseDisputeCommandIsNotConstructed)
}

// InvoiceID returns the disputed invoice.
func (c RaiseDisputeCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// ActorID returns the disputing user.
func (c RaiseDisputeCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the disputing user's role.
func (c RaiseDisputeCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Reason returns the dispute reason.
func (c RaiseDisputeCommand) Reason() string {
	return c.reason
}
