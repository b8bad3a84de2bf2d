package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpsertPricingRuleCommandIsNotConstructed = errors.New(
	"UpsertPricingRuleCommand must be created via NewUpsertPricingRuleCommand constructor",
)

// UpsertPricingRuleCommand represents an admin creating or editing a
// pricing rule. Every mutation is audit logged with old and new values.
type UpsertPricingRuleCommand struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole kernel.Role
	rule      *pricing.Rule

	guard guard.ConstructorGuard
}

// NewUpsertPricingRuleCommand creates a pricing rule upsert command.
// Rule field validation happens in the rule constructor.
func NewUpsertPricingRuleCommand(
	ruleID kernel.UUID,
	actorID kernel.UUID,
	actorRole kernel.Role,
	ruleType pricing.RuleType,
	restorationType *order.RestorationType,
	urgency *order.Urgency,
	amount decimal.Decimal,
	isPercentage bool,
	priority int,
	isActive bool,
) (UpsertPricingRuleCommand, error) {
	cmd := UpsertPricingRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return UpsertPricingRuleCommand{}, err
	}

	rule, err := pricing.NewRule(ruleID, ruleType, restorationType, urgency, amount, isPercentage, priority, isActive)
	if err != nil {
		return UpsertPricingRuleCommand{}, err
	}

	cmd.actorID = actorID
	cmd.actorRole = actorRole
	cmd.rule = rule
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertPricingRuleCommand) Validate() error {
	return c.guard.Validate(ErrUpsertPricingRuleCommandIsNotConstructed)
}

// ActorID returns the acting admin.
func (c UpsertPricingRuleCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c UpsertPricingRuleCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Rule returns the rule to persist.
func (c UpsertPricingRuleCommand) Rule() *pricing.Rule {
	return c.rule
}
