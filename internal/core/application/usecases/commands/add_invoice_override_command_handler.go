package commands

import (
	"context"
	"time"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"
)

// AddInvoiceOverrideCommandHandler handles manual invoice adjustments.
// Admin only. The dispute freeze applies to overrides exactly as it does to
// engine-produced items, and every override is audit logged.
type AddInvoiceOverrideCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewAddInvoiceOverrideCommandHandler creates a handler for manual invoice adjustments.
func NewAddInvoiceOverrideCommandHandler(uowFactory BillingUoWFactory) AddInvoiceOverrideCommandHandler {
	return AddInvoiceOverrideCommandHandler{uowFactory: uowFactory}
}

// Handle processes the override command.
func (h *AddInvoiceOverrideCommandHandler) Handle(ctx context.Context, cmd AddInvoiceOverrideCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.ActorRole() != kernel.RoleAdmin {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "add invoice override")
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

	// Overrides are never deduplicated: an admin adding the same adjustment
	// twice means two line items, so each one gets a fresh identity.
	item, err := pricing.NewAdminOverrideLineItem(
		kernel.NewUUID(),
		invoice.ID(),
		cmd.Description(),
		cmd.Quantity(),
		cmd.UnitPrice(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = invoice.AppendLineItems(item); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, invoice); err != nil {
		return err
	}

	newValue, err := snapshotInvoice(invoice)
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), "AddInvoiceOverride", "Invoice", invoice.ID(),
		nil, newValue,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
