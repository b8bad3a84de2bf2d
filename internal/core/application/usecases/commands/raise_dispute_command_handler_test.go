package commands_test

import (
	"testing"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validDisputeReason = "line items do not match the agreed fee"

func TestRaiseDisputeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	doctorID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), doctorID, "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	invoice, err := pricing.NewInvoice(kernel.NewUUID(), testOrder.ID())
	require.NoError(t, err)

	cmd, err := commands.NewRaiseDisputeCommand(invoice.ID(), doctorID, kernel.RoleDoctor, validDisputeReason)
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	orderRepo := new(MockOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Get", ctx, invoice.ID()).Return(invoice, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		invoiceRepo.On("Update", ctx, invoice).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) {
				entry := args.Get(1).(*audit.Entry)
				assert.Equal(t, "RaiseDispute", entry.Action())
				assert.Equal(t, "Invoice", entry.EntityType())
				assert.JSONEq(t, `{"status":"Open"}`, string(entry.OldValue()))
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRaiseDisputeCommandHandler(factory, new(MockLabStaffDirectory))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, invoice.IsFrozen())
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRaiseDisputeCommandHandler_Handle_ReasonTooShort(t *testing.T) {
	ctx := t.Context()

	doctorID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), doctorID, "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	invoice, err := pricing.NewInvoice(kernel.NewUUID(), testOrder.ID())
	require.NoError(t, err)

	cmd, err := commands.NewRaiseDisputeCommand(invoice.ID(), doctorID, kernel.RoleDoctor, "too short")
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	orderRepo := new(MockOrderRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Get", ctx, invoice.ID()).Return(invoice, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRaiseDisputeCommandHandler(factory, new(MockLabStaffDirectory))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.False(t, invoice.IsFrozen())
	auditRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRaiseDisputeCommandHandler_Handle_NotAuthorized(t *testing.T) {
	ctx := t.Context()

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Zirconia", order.UrgencyNormal, nil, nil)
	require.NoError(t, err)
	invoice, err := pricing.NewInvoice(kernel.NewUUID(), testOrder.ID())
	require.NoError(t, err)

	otherDoctor := kernel.NewUUID()
	cmd, err := commands.NewRaiseDisputeCommand(invoice.ID(), otherDoctor, kernel.RoleDoctor, validDisputeReason)
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Get", ctx, invoice.ID()).Return(invoice, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRaiseDisputeCommandHandler(factory, new(MockLabStaffDirectory))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.False(t, invoice.IsFrozen())
}
