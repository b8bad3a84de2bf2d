// Package pricing contains the rule-based invoicing model: pricing rules,
// invoices and their line items.
//
// Rules are ad-hoc rows with nullable wildcards: a nil restoration type or
// urgency matches every order. The rule engine (see domain/services) selects
// matching active rules, orders them deterministically by priority with rule
// id as tiebreak, and folds them into a running subtotal, producing one
// traceable line item per applied rule.
package pricing

import (
	"errors"
	"fmt"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrRuleIsNotConstructed is returned when a Rule was not created through
// NewRule or RestoreRule.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule or RestoreRule")

// Rule is one priced row of the rule table. A rule applies to an order when
// its restoration type and urgency scopes each either match the order or are
// nil (wildcard).
//
// Rules are immutable: an admin edit replaces the stored row wholesale and is
// captured in the audit log with old and new values.
type Rule struct {
	id              kernel.UUID
	ruleType        RuleType
	restorationType *order.RestorationType
	urgency         *order.Urgency
	amount          decimal.Decimal
	isPercentage    bool
	priority        int
	isActive        bool

	isConstructed bool
}

// NewRule creates a pricing rule.
//
// restorationType and urgency are nullable wildcards. isPercentage is only
// meaningful for Multiplier, Penalty and Bonus rules; BasePrice and FlatFee
// always apply their absolute amount. A negative amount is allowed for
// FlatFee (a discount) and rejected for BasePrice.
func NewRule(
	id kernel.UUID,
	ruleType RuleType,
	restorationType *order.RestorationType,
	urgency *order.Urgency,
	amount decimal.Decimal,
	isPercentage bool,
	priority int,
	isActive bool,
) (*Rule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ruleType.Validate(); err != nil {
		return nil, err
	}
	if restorationType != nil {
		if err := restorationType.Validate(); err != nil {
			return nil, err
		}
	}
	if urgency != nil {
		if err := urgency.Validate(); err != nil {
			return nil, err
		}
	}

	if ruleType == BasePrice && amount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("base price %s is negative", amount))
	}

	if isPercentage && (ruleType == BasePrice || ruleType == FlatFee) {
		return nil, errs.NewValueIsInvalidErrorWithCause("isPercentage",
			fmt.Errorf("%s rules apply absolute amounts", ruleType))
	}

	return &Rule{
		id:              id,
		ruleType:        ruleType,
		restorationType: restorationType,
		urgency:         urgency,
		amount:          amount,
		isPercentage:    isPercentage,
		priority:        priority,
		isActive:        isActive,
		isConstructed:   true,
	}, nil
}

// RestoreRule reconstructs a rule from persistence.
func RestoreRule(
	id kernel.UUID,
	ruleType RuleType,
	restorationType *order.RestorationType,
	urgency *order.Urgency,
	amount decimal.Decimal,
	isPercentage bool,
	priority int,
	isActive bool,
) (*Rule, error) {
	return NewRule(id, ruleType, restorationType, urgency, amount, isPercentage, priority, isActive)
}

// Validate ensures the Rule was constructed through a factory.
func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// Type returns the rule's effect tag.
func (r *Rule) Type() RuleType {
	return r.ruleType
}

// RestorationType returns the restoration scope, nil meaning wildcard.
func (r *Rule) RestorationType() *order.RestorationType {
	return r.restorationType
}

// Urgency returns the urgency scope, nil meaning wildcard.
func (r *Rule) Urgency() *order.Urgency {
	return r.urgency
}

// Amount returns the rule amount. Percentage rules interpret it as percent.
func (r *Rule) Amount() decimal.Decimal {
	return r.amount
}

// IsPercentage reports whether the amount is a percentage of the subtotal.
func (r *Rule) IsPercentage() bool {
	return r.isPercentage
}

// Priority returns the evaluation priority; lower evaluates first.
func (r *Rule) Priority() int {
	return r.priority
}

// IsActive reports whether the rule participates in evaluation.
func (r *Rule) IsActive() bool {
	return r.isActive
}

// Matches reports whether this rule applies to an order with the given
// attributes. Nil scopes are wildcards.
func (r *Rule) Matches(restorationType order.RestorationType, urgency order.Urgency) bool {
	if r.restorationType != nil && *r.restorationType != restorationType {
		return false
	}
	if r.urgency != nil && *r.urgency != urgency {
		return false
	}
	return true
}
