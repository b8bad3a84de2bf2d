package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrSubmitToMarketplaceCommandIsNotConstructed = errors.New(
	"SubmitToMarketplaceCommand must be created via NewSubmitToMarketplaceCommand constructor",
)

// SubmitToMarketplaceCommand represents a doctor's request to open an
// unassigned order for lab applications.
type SubmitToMarketplaceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitToMarketplaceCommand creates a marketplace submission command.
func NewSubmitToMarketplaceCommand(orderID, actorID kernel.UUID) (SubmitToMarketplaceCommand, error) {
	cmd := SubmitToMarketplaceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return SubmitToMarketplaceCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitToMarketplaceCommand) Validate() error {
	return c.guard.Validate(ErrSubmitToMarketplaceCommandIsNotConstructed)
}

// OrderID returns the order to open for applications.
func (c SubmitToMarketplaceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the requesting doctor.
func (c SubmitToMarketplaceCommand) ActorID() kernel.UUID {
	return c.actorID
}
