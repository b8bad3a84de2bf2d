package services_test

import (
	"testing"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketplaceOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	require.NoError(t, o.SubmitToMarketplace())
	return o
}

func mustApplication(t *testing.T, orderID, labID kernel.UUID) *marketplace.Application {
	t.Helper()
	app, err := marketplace.NewApplication(kernel.NewUUID(), orderID, labID)
	require.NoError(t, err)
	return app
}

func TestMarketplaceMatcher_IsVisibleTo(t *testing.T) {
	matcher := services.NewMarketplaceMatcher()
	labID := kernel.NewUUID()

	t.Run("visible to onboarded lab", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		assert.True(t, matcher.IsVisibleTo(o, labID, true, nil))
	})

	t.Run("hidden before onboarding", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		assert.False(t, matcher.IsVisibleTo(o, labID, false, nil))
	})

	t.Run("hidden after rejection", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		app := mustApplication(t, o.ID(), labID)
		require.NoError(t, app.Reject())

		assert.False(t, matcher.IsVisibleTo(o, labID, true, []*marketplace.Application{app}))
	})

	t.Run("hidden once assigned", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		require.NoError(t, o.AssignLab(kernel.NewUUID(), nil))

		assert.False(t, matcher.IsVisibleTo(o, labID, true, nil))
	})
}

func TestMarketplaceMatcher_NewApplication(t *testing.T) {
	matcher := services.NewMarketplaceMatcher()
	labID := kernel.NewUUID()

	t.Run("eligible lab gets a pending application", func(t *testing.T) {
		o := newMarketplaceOrder(t)

		app, err := matcher.NewApplication(o, labID, true, nil)

		require.NoError(t, err)
		assert.Equal(t, marketplace.ApplicationPending, app.Status())
		assert.True(t, app.IsOwnedBy(labID))
		assert.True(t, app.OrderID().IsEqual(o.ID()))
	})

	t.Run("rejected lab may not re-apply", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		rejected := mustApplication(t, o.ID(), labID)
		require.NoError(t, rejected.Reject())

		_, err := matcher.NewApplication(o, labID, true, []*marketplace.Application{rejected})

		require.ErrorIs(t, err, errs.ErrConflict)
		var conflictErr *errs.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, errs.ConflictAlreadyRejected, conflictErr.Reason)
	})

	t.Run("duplicate pending application is rejected", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		pending := mustApplication(t, o.ID(), labID)

		_, err := matcher.NewApplication(o, labID, true, []*marketplace.Application{pending})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("not onboarded lab is refused", func(t *testing.T) {
		o := newMarketplaceOrder(t)

		_, err := matcher.NewApplication(o, labID, false, nil)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("assigned order is closed for applications", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		require.NoError(t, o.AssignLab(kernel.NewUUID(), nil))

		_, err := matcher.NewApplication(o, labID, true, nil)

		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestMarketplaceMatcher_Accept(t *testing.T) {
	matcher := services.NewMarketplaceMatcher()

	t.Run("winner is assigned and rivals superseded", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		winner := mustApplication(t, o.ID(), kernel.NewUUID())
		rival := mustApplication(t, o.ID(), kernel.NewUUID())
		alreadyRejected := mustApplication(t, o.ID(), kernel.NewUUID())
		require.NoError(t, alreadyRejected.Reject())

		fee, err := kernel.NewMoney(decimal.NewFromInt(1875))
		require.NoError(t, err)

		superseded, err := matcher.Accept(o, winner, &fee, []*marketplace.Application{winner, rival, alreadyRejected})

		require.NoError(t, err)
		assert.Equal(t, marketplace.ApplicationAccepted, winner.Status())
		require.Len(t, superseded, 1)
		assert.Equal(t, marketplace.ApplicationSuperseded, rival.Status())
		assert.Equal(t, marketplace.ApplicationRejected, alreadyRejected.Status())

		require.NotNil(t, o.AssignedLabID())
		assert.True(t, o.AssignedLabID().IsEqual(winner.LabID()))
		assert.False(t, o.AutoAssignPending())
		assert.False(t, o.IsMarketplaceVisible())
	})

	t.Run("second accept loses the race", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		winner := mustApplication(t, o.ID(), kernel.NewUUID())
		loser := mustApplication(t, o.ID(), kernel.NewUUID())

		_, err := matcher.Accept(o, winner, nil, []*marketplace.Application{winner, loser})
		require.NoError(t, err)

		_, err = matcher.Accept(o, loser, nil, []*marketplace.Application{winner, loser})

		require.ErrorIs(t, err, errs.ErrConflict)
		var conflictErr *errs.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, errs.ConflictAlreadyAssigned, conflictErr.Reason)
	})

	t.Run("application from another order is refused", func(t *testing.T) {
		o := newMarketplaceOrder(t)
		foreign := mustApplication(t, kernel.NewUUID(), kernel.NewUUID())

		_, err := matcher.Accept(o, foreign, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
