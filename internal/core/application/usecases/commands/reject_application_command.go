package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrRejectApplicationCommandIsNotConstructed = errors.New(
	"RejectApplicationCommand must be created via NewRejectApplicationCommand constructor",
)

// RejectApplicationCommand represents a doctor's decision to decline one
// application. Rejection permanently excludes the lab from the order.
type RejectApplicationCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectApplicationCommand creates an application rejection command.
func NewRejectApplicationCommand(applicationID, actorID kernel.UUID) (RejectApplicationCommand, error) {
	cmd := RejectApplicationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(applicationID.Validate(), actorID.Validate()); err != nil {
		return RejectApplicationCommand{}, err
	}

	cmd.applicationID = applicationID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectApplicationCommand) Validate() error {
	return c.guard.Validate(ErrRejectApplicationCommandIsNotConstructed)
}

// ApplicationID returns the rejected application.
func (c RejectApplicationCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// ActorID returns the deciding doctor.
func (c RejectApplicationCommand) ActorID() kernel.UUID {
	return c.actorID
}
