package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrApplyToOrderCommandIsNotConstructed = errors.New(
	"ApplyToOrderCommand must be created via NewApplyToOrderCommand constructor",
)

// ApplyToOrderCommand represents a lab's application to take a marketplace
// order. Several labs may hold Pending applications for the same order.
type ApplyToOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	labID     kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewApplyToOrderCommand creates a marketplace application command.
func NewApplyToOrderCommand(
	orderID, labID, actorID kernel.UUID,
	actorRole kernel.Role,
) (ApplyToOrderCommand, error) {
	cmd := ApplyToOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(orderID.Validate(), labID.Validate(), actorID.Validate(), actorRole.Validate())
	if err != nil {
		return ApplyToOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.labID = labID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyToOrderCommand) Validate() error {
	return c.guard.Validate(ErrApplyToOrderCommandIsNotConstructed)
}

// OrderID returns the order being applied to.
func (c ApplyToOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LabID returns the applying lab.
func (c ApplyToOrderCommand) LabID() kernel.UUID {
	return c.labID
}

// ActorID returns the authenticated user submitting the application.
func (c ApplyToOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c ApplyToOrderCommand) ActorRole() kernel.Role {
	return c.actorRole
}
