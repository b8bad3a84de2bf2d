package services

import (
	"fmt"
	"sort"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// PricingEngine is a domain service that derives invoice line items from the
// active pricing rule set when a billable lifecycle event fires.
//
// Evaluation is a deterministic fold over the matching rules:
//   - Rules are filtered to active rules whose restoration type and urgency
//     scopes match the order (nil scope matches everything).
//   - Matching rules are sorted ascending by priority, ties broken by rule id.
//   - A running subtotal starts at zero. BasePrice and FlatFee apply their
//     absolute amount. Multiplier and Bonus add their effect, Penalty
//     subtracts it, where effect is the raw amount or a percentage of the
//     subtotal accumulated so far.
//
// Line item ids are derived deterministically from the invoice id, the
// source event and the rule, so re-running the same evaluation produces
// identical items and retried appends deduplicate cleanly.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Evaluate computes the line items the rule set produces for one billable
// event on one order.
//
// Parameters:
//   - invoice: The invoice the items will belong to (must be valid)
//   - o: The order whose attributes scope the rule match
//   - rules: The full rule set; inactive and non-matching rules are skipped
//   - event: The billable lifecycle event that triggered evaluation
//   - evaluatedAt: Timestamp stamped on every produced item; callers must
//     pass the same value when recomputing for the same event
//
// Returns:
//   - []pricing.LineItem: Produced items in evaluation order, empty when no
//     rule matches
//   - error: Validation errors from the invoice, order or produced items
func (e PricingEngine) Evaluate(
	invoice *pricing.Invoice,
	o *order.Order,
	rules []*pricing.Rule,
	event pricing.SourceEvent,
	evaluatedAt time.Time,
) ([]pricing.LineItem, error) {
	if err := invoice.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	matched := e.matchRules(o, rules)

	subtotal := decimal.Zero
	items := make([]pricing.LineItem, 0, len(matched))
	for _, rule := range matched {
		effect := e.ruleEffect(rule, subtotal)
		subtotal = subtotal.Add(effect)

		ruleID := rule.ID()
		item, err := pricing.NewLineItem(
			kernel.DeterministicUUID(invoice.ID(), fmt.Sprintf("%s/%s", event, ruleID)),
			invoice.ID(),
			rule.Type().String(),
			e.describeRule(rule),
			1,
			effect,
			event,
			&ruleID,
			evaluatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// matchRules filters the rule set down to active rules whose scope matches
// the order and sorts them into deterministic evaluation order.
func (e PricingEngine) matchRules(o *order.Order, rules []*pricing.Rule) []*pricing.Rule {
	matched := make([]*pricing.Rule, 0, len(rules))
	for _, rule := range rules {
		if rule == nil || rule.Validate() != nil || !rule.IsActive() {
			continue
		}
		if rule.Matches(o.RestorationType(), o.Urgency()) {
			matched = append(matched, rule)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority() != matched[j].Priority() {
			return matched[i].Priority() < matched[j].Priority()
		}
		return matched[i].ID().String() < matched[j].ID().String()
	})

	return matched
}

// ruleEffect computes the signed subtotal delta a rule contributes.
func (e PricingEngine) ruleEffect(rule *pricing.Rule, subtotal decimal.Decimal) decimal.Decimal {
	switch rule.Type() {
	case pricing.BasePrice, pricing.FlatFee:
		return rule.Amount()
	case pricing.Penalty:
		return e.scaledAmount(rule, subtotal).Neg()
	default: // Multiplier, Bonus
		return e.scaledAmount(rule, subtotal)
	}
}

func (e PricingEngine) scaledAmount(rule *pricing.Rule, subtotal decimal.Decimal) decimal.Decimal {
	if rule.IsPercentage() {
		return subtotal.Mul(rule.Amount()).Div(decimal.NewFromInt(100))
	}
	return rule.Amount()
}

func (e PricingEngine) describeRule(rule *pricing.Rule) string {
	if rule.IsPercentage() {
		return fmt.Sprintf("%s %s%%", rule.Type(), rule.Amount())
	}
	return fmt.Sprintf("%s %s", rule.Type(), rule.Amount())
}
