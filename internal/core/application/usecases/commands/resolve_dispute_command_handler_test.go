package commands_test

import (
	"testing"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveDisputeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	invoice, err := pricing.NewInvoice(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, invoice.RaiseDispute(validDisputeReason))

	adminID := kernel.NewUUID()
	cmd, err := commands.NewResolveDisputeCommand(invoice.ID(), adminID, kernel.RoleAdmin)
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

	handler := commands.NewResolveDisputeCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, pricing.InvoiceResolved, invoice.Status())
	assert.False(t, invoice.IsFrozen())
	uow.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_AdminOnly(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewResolveDisputeCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.RoleDoctor)
	require.NoError(t, err)

	factory := new(MockBillingUoWFactory)
	handler := commands.NewResolveDisputeCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}
