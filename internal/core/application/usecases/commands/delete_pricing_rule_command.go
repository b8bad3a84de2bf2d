package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/guard"
)

var ErrDeletePricingRuleCommandIsNotConstructed = errors.New(
	"DeletePricingRuleCommand must be created via NewDeletePricingRuleCommand constructor",
)

// DeletePricingRuleCommand represents an admin removing a pricing rule.
type DeletePricingRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID    kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewDeletePricingRuleCommand creates a pricing rule deletion command.
func NewDeletePricingRuleCommand(ruleID, actorID kernel.UUID, actorRole kernel.Role) (DeletePricingRuleCommand, error) {
	cmd := DeletePricingRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(ruleID.Validate(), actorID.Validate(), actorRole.Validate()); err != nil {
		return DeletePricingRuleCommand{}, err
	}

	cmd.ruleID = ruleID
	cmd.actorID = actorID
	cmd.actorRole = actorRole
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePricingRuleCommand) Validate() error {
	return c.guard.Validate(ErrDeletePricingRuleCommandIsNotConstructed)
}

// RuleID returns the rule to delete.
func (c DeletePricingRuleCommand) RuleID() kernel.UUID {
	return c.ruleID
}

// ActorID returns the acting admin.
func (c DeletePricingRuleCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c DeletePricingRuleCommand) ActorRole() kernel.Role {
	return c.actorRole
}
