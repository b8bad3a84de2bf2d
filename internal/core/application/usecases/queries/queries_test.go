package queries_test

import (
	"testing"

	"dentallab/internal/core/application/usecases/queries"
	"dentallab/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetMarketplaceOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetMarketplaceOrdersQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetMarketplaceOrdersQuery_EmptyLabID(t *testing.T) {
	_, err := queries.NewGetMarketplaceOrdersQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetMarketplaceOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetMarketplaceOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetMarketplaceOrdersQueryIsNotConstructed)
}

func TestNewGetOrderHistoryQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetOrderHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
}

func TestNewGetInvoiceQuery_Valid(t *testing.T) {
	query, err := queries.NewGetInvoiceQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetInvoiceQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetInvoiceQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetInvoiceQueryIsNotConstructed)
}

func TestNewGetPendingApplicationsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetPendingApplicationsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetPendingApplicationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingApplicationsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingApplicationsQueryIsNotConstructed)
}
