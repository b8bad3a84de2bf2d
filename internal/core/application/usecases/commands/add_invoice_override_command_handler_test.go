package commands_test

import (
	"testing"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddInvoiceOverrideCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	invoice, err := pricing.NewInvoice(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	adminID := kernel.NewUUID()
	cmd, err := commands.NewAddInvoiceOverrideCommand(
		invoice.ID(), adminID, kernel.RoleAdmin,
		"goodwill credit", 1, decimal.NewFromInt(-200),
	)
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Get", ctx, invoice.ID()).Return(invoice, nil).Once(),
		invoiceRepo.On("Update", ctx, invoice).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddInvoiceOverrideCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, invoice.Items(), 1)
	assert.Equal(t, "AdminOverride", invoice.Items()[0].LineType())
	assert.True(t, decimal.NewFromInt(-200).Equal(invoice.Subtotal()))
}

func TestAddInvoiceOverrideCommandHandler_Handle_RepeatedIdenticalOverridesBothAppend(t *testing.T) {
	ctx := t.Context()

	invoice, err := pricing.NewInvoice(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	adminID := kernel.NewUUID()

	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("Get", ctx, invoice.ID()).Return(invoice, nil).Twice()
	invoiceRepo.On("Update", ctx, invoice).Return(nil).Twice()

	auditRepo := new(MockAuditRepository)
	auditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("InvoiceRepository").Return(invoiceRepo).Twice()
	uow.On("AuditRepository").Return(auditRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Twice()

	handler := commands.NewAddInvoiceOverrideCommandHandler(factory)

	// The same remake fee charged twice is two separate line items.
	for range 2 {
		cmd, cmdErr := commands.NewAddInvoiceOverrideCommand(
			invoice.ID(), adminID, kernel.RoleAdmin,
			"remake fee", 1, decimal.NewFromInt(75),
		)
		require.NoError(t, cmdErr)
		require.NoError(t, handler.Handle(ctx, cmd))
	}

	require.Len(t, invoice.Items(), 2)
	assert.NotEqual(t, invoice.Items()[0].ID(), invoice.Items()[1].ID())
	assert.True(t, decimal.NewFromInt(150).Equal(invoice.Subtotal()))
}

func TestAddInvoiceOverrideCommandHandler_Handle_FrozenInvoice(t *testing.T) {
	ctx := t.Context()

	invoice, err := pricing.NewInvoice(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, invoice.RaiseDispute(validDisputeReason))

	cmd, err := commands.NewAddInvoiceOverrideCommand(
		invoice.ID(), kernel.NewUUID(), kernel.RoleAdmin,
		"goodwill credit", 1, decimal.NewFromInt(-200),
	)
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Get", ctx, invoice.ID()).Return(invoice, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAddInvoiceOverrideCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrGuardViolation)
	var guardErr *errs.GuardViolationError
	require.ErrorAs(t, err, &guardErr)
	assert.Equal(t, errs.GuardInvoiceFrozen, guardErr.Reason)

	invoiceRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Empty(t, invoice.Items())
}

func TestAddInvoiceOverrideCommandHandler_Handle_AdminOnly(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewAddInvoiceOverrideCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.RoleLabStaff,
		"goodwill credit", 1, decimal.NewFromInt(-200),
	)
	require.NoError(t, err)

	factory := new(MockBillingUoWFactory)
	handler := commands.NewAddInvoiceOverrideCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}
