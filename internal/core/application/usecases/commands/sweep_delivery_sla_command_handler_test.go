package commands_test

import (
	"testing"
	"time"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sweepWindow = 72 * time.Hour

func deliveredTestOrder(t *testing.T, deliveredAgo time.Duration) *order.Order {
	t.Helper()

	labID := kernel.NewUUID()
	deliveredAt := time.Now().UTC().Add(-deliveredAgo)

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		order.Delivered,
		kernel.NewUUID(),
		"Zirconia",
		order.UrgencyNormal,
		&labID,
		false,
		true,
		nil,
		nil,
		deliveredAt.Add(-24*time.Hour),
		deliveredAt,
		&deliveredAt,
		nil,
		nil,
	)
	require.NoError(t, err)
	return o
}

func TestSweepDeliverySlaCommandHandler_Handle_BillsOverdueOrdersOnly(t *testing.T) {
	ctx := t.Context()

	overdue := deliveredTestOrder(t, 100*time.Hour)
	recent := deliveredTestOrder(t, 10*time.Hour)

	penalty, err := pricing.NewRule(
		kernel.NewUUID(), pricing.Penalty, nil, nil,
		decimal.NewFromInt(50), false, 10, true,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	ruleRepo := new(MockPricingRuleRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetDeliveredUnconfirmed", ctx).Return([]*order.Order{overdue, recent}, nil).Once()

	// Billing runs for the overdue order only
	uow.On("InvoiceRepository").Return(invoiceRepo).Once()
	invoiceRepo.On("GetByOrder", ctx, overdue.ID()).
		Return(nil, errs.NewObjectNotFoundError("invoice", overdue.ID().String())).Once()
	invoiceRepo.On("Add", ctx, mock.AnythingOfType("*pricing.Invoice")).Return(nil).Once()
	uow.On("PricingRuleRepository").Return(ruleRepo).Once()
	ruleRepo.On("GetActive", ctx).Return([]*pricing.Rule{penalty}, nil).Once()

	var billed *pricing.Invoice
	invoiceRepo.On("Update", ctx, mock.AnythingOfType("*pricing.Invoice")).
		Run(func(args mock.Arguments) {
			billed = args.Get(1).(*pricing.Invoice)
		}).Return(nil).Once()

	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSweepDeliverySlaCommandHandler(factory, sweepWindow)
	err = handler.Handle(ctx, commands.NewSweepDeliverySlaCommand())

	require.NoError(t, err)
	require.NotNil(t, billed)
	require.Len(t, billed.Items(), 1)
	assert.Equal(t, overdue.ID(), billed.OrderID())
	assert.Equal(t, pricing.SourceSlaCalculation, billed.Items()[0].SourceEvent())
	assert.True(t, billed.Items()[0].UnitPrice().Equal(decimal.NewFromInt(-50)))
	uow.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestSweepDeliverySlaCommandHandler_Handle_NoOverdueOrders_NoBilling(t *testing.T) {
	ctx := t.Context()

	recent := deliveredTestOrder(t, time.Hour)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetDeliveredUnconfirmed", ctx).Return([]*order.Order{recent}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSweepDeliverySlaCommandHandler(factory, sweepWindow)
	err := handler.Handle(ctx, commands.NewSweepDeliverySlaCommand())

	require.NoError(t, err)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "InvoiceRepository")
}

func TestSweepDeliverySlaCommandHandler_Handle_RepeatedSweepProducesSameItemIDs(t *testing.T) {
	ctx := t.Context()

	overdue := deliveredTestOrder(t, 100*time.Hour)
	penalty, err := pricing.NewRule(
		kernel.NewUUID(), pricing.Penalty, nil, nil,
		decimal.NewFromInt(50), false, 10, true,
	)
	require.NoError(t, err)

	var itemIDs []kernel.UUID

	for range 2 {
		orderRepo := new(MockOrderRepository)
		invoiceRepo := new(MockInvoiceRepository)
		ruleRepo := new(MockPricingRuleRepository)
		uow := new(MockUoW)

		// Both sweeps see the same stored invoice
		invoice, invErr := pricing.NewInvoice(deterministicInvoiceID(overdue.ID()), overdue.ID())
		require.NoError(t, invErr)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetDeliveredUnconfirmed", ctx).Return([]*order.Order{overdue}, nil).Once()
		uow.On("InvoiceRepository").Return(invoiceRepo).Once()
		invoiceRepo.On("GetByOrder", ctx, overdue.ID()).Return(invoice, nil).Once()
		uow.On("PricingRuleRepository").Return(ruleRepo).Once()
		ruleRepo.On("GetActive", ctx).Return([]*pricing.Rule{penalty}, nil).Once()
		invoiceRepo.On("Update", ctx, invoice).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewSweepDeliverySlaCommandHandler(factory, sweepWindow)
		require.NoError(t, handler.Handle(ctx, commands.NewSweepDeliverySlaCommand()))

		require.Len(t, invoice.Items(), 1)
		itemIDs = append(itemIDs, invoice.Items()[0].ID())
	}

	assert.Equal(t, itemIDs[0], itemIDs[1])
}

func deterministicInvoiceID(orderID kernel.UUID) kernel.UUID {
	return kernel.DeterministicUUID(orderID, "invoice")
}
