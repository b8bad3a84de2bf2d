package commands

import (
	"context"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// ResolveDisputeCommandHandler handles dispute resolution. Only admins may
// resolve; resolution unfreezes the invoice and is audit logged.
type ResolveDisputeCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewResolveDisputeCommandHandler creates a handler for dispute resolution.
func NewResolveDisputeCommandHandler(uowFactory BillingUoWFactory) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{uowFactory: uowFactory}
}

// Handle processes the dispute resolution command.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.ActorRole() != kernel.RoleAdmin {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "resolve dispute")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	invoice, err := invoiceRepo.Get(ctx, cmd.InvoiceID())
	if err != nil {
		return err
	}

	oldValue, err := snapshotInvoice(invoice)
	if err != nil {
		return err
	}

	if err = invoice.ResolveDispute(); err != nil {
		return err
	}

	newValue, err := snapshotInvoice(invoice)
	if err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, invoice); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), "ResolveDispute", "Invoice", invoice.ID(),
		oldValue, newValue,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
