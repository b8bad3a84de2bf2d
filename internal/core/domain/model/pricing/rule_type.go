package pricing

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// RuleType tags the effect a pricing rule has on the running subtotal.
type RuleType int

const (
	// RuleTypeUnknown represents an invalid or undefined rule type.
	RuleTypeUnknown RuleType = iota

	// BasePrice adds the absolute rule amount to the subtotal.
	// Typically scoped to a restoration type.
	BasePrice

	// Multiplier adds a surcharge: a percentage of the current subtotal
	// when isPercentage is set, otherwise the absolute amount.
	Multiplier

	// FlatFee adds (or, with a negative amount, subtracts) the absolute
	// rule amount.
	FlatFee

	// Penalty subtracts its effect from the subtotal.
	Penalty

	// Bonus adds its effect to the subtotal.
	Bonus
)

func getRuleTypeStrings() map[RuleType]string {
	return map[RuleType]string{
		RuleTypeUnknown: "Unknown",
		BasePrice:       "BasePrice",
		Multiplier:      "Multiplier",
		FlatFee:         "FlatFee",
		Penalty:         "Penalty",
		Bonus:           "Bonus",
	}
}

// Validate checks if the rule type is valid.
func (r RuleType) Validate() error {
	switch r {
	case BasePrice, Multiplier, FlatFee, Penalty, Bonus:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("ruleType", fmt.Errorf("%d is not a valid rule type", r))
	}
}

// String returns the human-readable name of the rule type.
func (r RuleType) String() string {
	if str, ok := getRuleTypeStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RuleTypeFromString parses a rule type name as it appears over the wire.
func RuleTypeFromString(s string) (RuleType, error) {
	for rt, name := range getRuleTypeStrings() {
		if rt != RuleTypeUnknown && name == s {
			return rt, nil
		}
	}
	return RuleTypeUnknown, errs.NewValueIsInvalidErrorWithCause("ruleType", fmt.Errorf("%q is not a valid rule type", s))
}
