package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAcceptApplicationCommandIsNotConstructed = errors.New(
	"AcceptApplicationCommand must be created via NewAcceptApplicationCommand constructor",
)

// AcceptApplicationCommand represents a doctor's decision to hand the order
// to one applying lab. The optional agreed fee is fixed at acceptance time.
type AcceptApplicationCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	actorID       kernel.UUID
	agreedFee     *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAcceptApplicationCommand creates an application acceptance command.
func NewAcceptApplicationCommand(
	applicationID kernel.UUID,
	actorID kernel.UUID,
	agreedFee *decimal.Decimal,
) (AcceptApplicationCommand, error) {
	cmd := AcceptApplicationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(applicationID.Validate(), actorID.Validate()); err != nil {
		return AcceptApplicationCommand{}, err
	}

	cmd.applicationID = applicationID
	cmd.actorID = actorID
	cmd.agreedFee = agreedFee
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptApplicationCommand) Validate() error {
	return c.guard.Validate(ErrAcceptApplicationCommandIsNotConstructed)
}

// ApplicationID returns the accepted application.
func (c AcceptApplicationCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// ActorID returns the deciding doctor.
func (c AcceptApplicationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// AgreedFee returns the fee fixed at acceptance, nil when none was agreed.
func (c AcceptApplicationCommand) AgreedFee() *decimal.Decimal {
	return c.agreedFee
}
