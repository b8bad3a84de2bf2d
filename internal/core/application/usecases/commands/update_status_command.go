package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents a request to move an order to a new
// lifecycle status. Marking an order Delivered goes through this command
// too and leaves it awaiting the doctor's confirmation.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role
	target    order.Status
	notes     *string

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to change an order's status.
// The target must be a defined status; whether the transition is allowed
// is decided by the order aggregate.
func NewUpdateStatusCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole kernel.Role,
	target order.Status,
	notes *string,
) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actorID, actorRole),
		cmd.setTarget(target),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// OrderID returns the order being moved.
func (c UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user requesting the transition.
func (c UpdateStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the requesting user's role.
func (c UpdateStatusCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Target returns the requested status.
func (c UpdateStatusCommand) Target() order.Status {
	return c.target
}

// Notes returns the optional note attached to the transition.
func (c UpdateStatusCommand) Notes() *string {
	return c.notes
}

func (c *UpdateStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateStatusCommand) setActor(actorID kernel.UUID, actorRole kernel.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}
	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}

func (c *UpdateStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
