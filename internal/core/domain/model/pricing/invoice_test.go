package pricing_test

import (
	"strings"
	"testing"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const disputeReason = "the agreed fee does not match the quoted amount"

func newTestInvoice(t *testing.T) *pricing.Invoice {
	t.Helper()
	inv, err := pricing.NewInvoice(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return inv
}

func newTestLineItem(t *testing.T, invoiceID kernel.UUID, name string, unitPrice int64) pricing.LineItem {
	t.Helper()
	item, err := pricing.NewLineItem(
		kernel.DeterministicUUID(invoiceID, name),
		invoiceID,
		"BasePrice",
		name,
		1,
		decimal.NewFromInt(unitPrice),
		pricing.SourceLabAccepted,
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return item
}

func TestNewInvoice(t *testing.T) {
	inv := newTestInvoice(t)

	assert.Equal(t, pricing.InvoiceOpen, inv.Status())
	assert.Nil(t, inv.DisputeReason())
	assert.Empty(t, inv.Items())
	assert.True(t, inv.Subtotal().IsZero())
	assert.False(t, inv.IsFrozen())
}

func TestInvoice_AppendLineItems(t *testing.T) {
	t.Run("items accumulate and subtotal follows", func(t *testing.T) {
		inv := newTestInvoice(t)

		base := newTestLineItem(t, inv.ID(), "Zirconia base", 1500)
		surcharge := newTestLineItem(t, inv.ID(), "urgency surcharge", 375)

		require.NoError(t, inv.AppendLineItems(base))
		require.NoError(t, inv.AppendLineItems(surcharge))

		assert.Len(t, inv.Items(), 2)
		assert.True(t, decimal.NewFromInt(1875).Equal(inv.Subtotal()))
	})

	t.Run("retried append with same deterministic ids is idempotent", func(t *testing.T) {
		inv := newTestInvoice(t)
		base := newTestLineItem(t, inv.ID(), "Zirconia base", 1500)

		require.NoError(t, inv.AppendLineItems(base))
		require.NoError(t, inv.AppendLineItems(base))

		assert.Len(t, inv.Items(), 1)
		assert.True(t, decimal.NewFromInt(1500).Equal(inv.Subtotal()))
	})

	t.Run("item bound to another invoice is rejected", func(t *testing.T) {
		inv := newTestInvoice(t)
		foreign := newTestLineItem(t, kernel.NewUUID(), "Zirconia base", 1500)

		err := inv.AppendLineItems(foreign)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, inv.Items())
	})
}

func TestInvoice_RaiseDispute(t *testing.T) {
	t.Run("freezes the invoice", func(t *testing.T) {
		inv := newTestInvoice(t)

		require.NoError(t, inv.RaiseDispute(disputeReason))

		assert.Equal(t, pricing.InvoiceDisputed, inv.Status())
		assert.True(t, inv.IsFrozen())
		require.NotNil(t, inv.DisputeReason())
		assert.Equal(t, disputeReason, *inv.DisputeReason())
	})

	t.Run("reason below twenty characters is rejected", func(t *testing.T) {
		inv := newTestInvoice(t)

		err := inv.RaiseDispute(strings.Repeat("x", 19))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, pricing.InvoiceOpen, inv.Status())
	})

	t.Run("double raise fails", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.RaiseDispute(disputeReason))

		err := inv.RaiseDispute(disputeReason)

		require.ErrorIs(t, err, errs.ErrGuardViolation)
	})

	t.Run("frozen invoice rejects every append", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.RaiseDispute(disputeReason))

		err := inv.AppendLineItems(newTestLineItem(t, inv.ID(), "Zirconia base", 1500))

		require.ErrorIs(t, err, errs.ErrGuardViolation)
		var guardErr *errs.GuardViolationError
		require.ErrorAs(t, err, &guardErr)
		assert.Equal(t, errs.GuardInvoiceFrozen, guardErr.Reason)
		assert.Empty(t, inv.Items())
	})
}

func TestInvoice_ResolveDispute(t *testing.T) {
	t.Run("unfreezes a disputed invoice", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.RaiseDispute(disputeReason))

		require.NoError(t, inv.ResolveDispute())

		assert.Equal(t, pricing.InvoiceResolved, inv.Status())
		assert.False(t, inv.IsFrozen())
		require.NoError(t, inv.AppendLineItems(newTestLineItem(t, inv.ID(), "post-resolution adjustment", 100)))
	})

	t.Run("fails when no dispute is open", func(t *testing.T) {
		inv := newTestInvoice(t)

		err := inv.ResolveDispute()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLineItem(t *testing.T) {
	t.Run("total price is unit price times quantity", func(t *testing.T) {
		invoiceID := kernel.NewUUID()
		item, err := pricing.NewLineItem(
			kernel.DeterministicUUID(invoiceID, "remake"),
			invoiceID,
			"Penalty",
			"remake penalty",
			3,
			decimal.NewFromInt(-40),
			pricing.SourceReworkDetected,
			nil,
			time.Now().UTC(),
		)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-120).Equal(item.TotalPrice()))
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		invoiceID := kernel.NewUUID()
		_, err := pricing.NewLineItem(
			kernel.DeterministicUUID(invoiceID, "empty"),
			invoiceID,
			"Bonus",
			"empty line",
			0,
			decimal.NewFromInt(10),
			pricing.SourceFeedbackApproved,
			nil,
			time.Now().UTC(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("admin override carries no rule reference", func(t *testing.T) {
		invoiceID := kernel.NewUUID()
		item, err := pricing.NewAdminOverrideLineItem(
			kernel.DeterministicUUID(invoiceID, "goodwill"),
			invoiceID,
			"goodwill credit",
			1,
			decimal.NewFromInt(-200),
			time.Now().UTC(),
		)

		require.NoError(t, err)
		assert.Equal(t, "AdminOverride", item.LineType())
		assert.Equal(t, pricing.SourceAdminOverride, item.SourceEvent())
		assert.Nil(t, item.RuleApplied())
	})
}
