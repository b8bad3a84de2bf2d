package pricing_test

import (
	"testing"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restorationPtr(s string) *order.RestorationType {
	r := order.RestorationType(s)
	return &r
}

func urgencyPtr(u order.Urgency) *order.Urgency {
	return &u
}

func TestNewRule(t *testing.T) {
	t.Run("scoped base price rule", func(t *testing.T) {
		r, err := pricing.NewRule(
			kernel.NewUUID(), pricing.BasePrice,
			restorationPtr("Zirconia"), nil,
			decimal.NewFromInt(1500), false, 1, true,
		)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, pricing.BasePrice, r.Type())
		assert.Equal(t, 1, r.Priority())
		assert.True(t, r.IsActive())
	})

	t.Run("negative base price is rejected", func(t *testing.T) {
		_, err := pricing.NewRule(
			kernel.NewUUID(), pricing.BasePrice, nil, nil,
			decimal.NewFromInt(-100), false, 1, true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative flat fee is a discount", func(t *testing.T) {
		_, err := pricing.NewRule(
			kernel.NewUUID(), pricing.FlatFee, nil, nil,
			decimal.NewFromInt(-50), false, 5, true,
		)
		require.NoError(t, err)
	})

	t.Run("percentage base price is rejected", func(t *testing.T) {
		_, err := pricing.NewRule(
			kernel.NewUUID(), pricing.BasePrice, nil, nil,
			decimal.NewFromInt(10), true, 1, true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid rule type is rejected", func(t *testing.T) {
		_, err := pricing.NewRule(
			kernel.NewUUID(), pricing.RuleTypeUnknown, nil, nil,
			decimal.NewFromInt(10), false, 1, true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRule_Matches(t *testing.T) {
	tests := []struct {
		name            string
		restorationType *order.RestorationType
		urgency         *order.Urgency
		want            bool
	}{
		{"both wildcards", nil, nil, true},
		{"matching restoration", restorationPtr("Zirconia"), nil, true},
		{"mismatching restoration", restorationPtr("EMax"), nil, false},
		{"matching urgency", nil, urgencyPtr(order.UrgencyUrgent), true},
		{"mismatching urgency", nil, urgencyPtr(order.UrgencyNormal), false},
		{"both scoped and matching", restorationPtr("Zirconia"), urgencyPtr(order.UrgencyUrgent), true},
		{"restoration matches but urgency does not", restorationPtr("Zirconia"), urgencyPtr(order.UrgencyNormal), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := pricing.NewRule(
				kernel.NewUUID(), pricing.FlatFee, tt.restorationType, tt.urgency,
				decimal.NewFromInt(10), false, 1, true,
			)
			require.NoError(t, err)

			assert.Equal(t, tt.want, r.Matches("Zirconia", order.UrgencyUrgent))
		})
	}
}

func TestRuleTypeFromString(t *testing.T) {
	for _, name := range []string{"BasePrice", "Multiplier", "FlatFee", "Penalty", "Bonus"} {
		rt, err := pricing.RuleTypeFromString(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, rt.String())
	}

	_, err := pricing.RuleTypeFromString("Discount")
	require.Error(t, err)
}
