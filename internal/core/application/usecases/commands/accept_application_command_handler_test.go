package commands_test

import (
	"testing"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptApplicationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	doctorID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), doctorID, "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	require.NoError(t, testOrder.SubmitToMarketplace())

	winner, err := marketplace.NewApplication(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)
	rival, err := marketplace.NewApplication(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	fee := decimal.NewFromInt(1875)
	cmd, err := commands.NewAcceptApplicationCommand(winner.ID(), doctorID, &fee)
	require.NoError(t, err)

	invoice, err := pricing.NewInvoice(kernel.NewUUID(), testOrder.ID())
	require.NoError(t, err)
	baseRule, err := pricing.NewRule(
		kernel.NewUUID(), pricing.BasePrice, nil, nil,
		decimal.NewFromInt(1500), false, 1, true,
	)
	require.NoError(t, err)

	staffID := kernel.NewUUID()
	staffDirectory := new(MockLabStaffDirectory)
	staffDirectory.On("StaffIDs", ctx, winner.LabID()).Return([]kernel.UUID{staffID}, nil).Once()

	appRepo := new(MockApplicationRepository)
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	ruleRepo := new(MockPricingRuleRepository)
	notifRepo := new(MockNotificationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		appRepo.On("Get", ctx, winner.ID()).Return(winner, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		appRepo.On("GetByOrder", ctx, testOrder.ID()).
			Return([]*marketplace.Application{winner, rival}, nil).Once(),
		orderRepo.On("AssignLabConditionally", ctx, testOrder).Return(true, nil).Once(),
		appRepo.On("Update", ctx, winner).Return(nil).Once(),
		appRepo.On("Update", ctx, rival).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("GetByOrder", ctx, testOrder.ID()).Return(invoice, nil).Once(),
		uow.On("PricingRuleRepository").Return(ruleRepo).Once(),
		ruleRepo.On("GetActive", ctx).Return([]*pricing.Rule{baseRule}, nil).Once(),
		invoiceRepo.On("Update", ctx, invoice).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notifRepo).Once(),
		notifRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMarketplaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptApplicationCommandHandler(factory, staffDirectory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, marketplace.ApplicationAccepted, winner.Status())
	assert.Equal(t, marketplace.ApplicationSuperseded, rival.Status())
	require.NotNil(t, testOrder.AssignedLabID())
	assert.True(t, testOrder.AssignedLabID().IsEqual(winner.LabID()))
	require.Len(t, invoice.Items(), 1)
	assert.True(t, decimal.NewFromInt(1500).Equal(invoice.Subtotal()))

	appRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptApplicationCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	doctorID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), doctorID, "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	require.NoError(t, testOrder.SubmitToMarketplace())

	app, err := marketplace.NewApplication(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewAcceptApplicationCommand(app.ID(), doctorID, nil)
	require.NoError(t, err)

	appRepo := new(MockApplicationRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		appRepo.On("Get", ctx, app.ID()).Return(app, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		appRepo.On("GetByOrder", ctx, testOrder.ID()).
			Return([]*marketplace.Application{app}, nil).Once(),
		// Another session accepted between the read and the write.
		orderRepo.On("AssignLabConditionally", ctx, testOrder).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMarketplaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptApplicationCommandHandler(factory, new(MockLabStaffDirectory))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	var conflictErr *errs.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, errs.ConflictAlreadyAssigned, conflictErr.Reason)

	appRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAcceptApplicationCommandHandler_Handle_NotOrderOwner(t *testing.T) {
	ctx := t.Context()

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	require.NoError(t, testOrder.SubmitToMarketplace())

	app, err := marketplace.NewApplication(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewAcceptApplicationCommand(app.ID(), kernel.NewUUID(), nil)
	require.NoError(t, err)

	appRepo := new(MockApplicationRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		appRepo.On("Get", ctx, app.ID()).Return(app, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMarketplaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptApplicationCommandHandler(factory, new(MockLabStaffDirectory))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, marketplace.ApplicationPending, app.Status())
}
