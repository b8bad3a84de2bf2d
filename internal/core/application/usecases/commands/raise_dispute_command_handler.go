package commands

import (
	"context"
	"encoding/json"
	"slices"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// invoiceSnapshot is the audit trail representation of an invoice's
// dispute state.
type invoiceSnapshot struct {
	Status        string  `json:"status"`
	DisputeReason *string `json:"disputeReason,omitempty"`
}

func snapshotInvoice(invoice *pricing.Invoice) ([]byte, error) {
	return json.Marshal(invoiceSnapshot{
		Status:        invoice.Status().String(),
		DisputeReason: invoice.DisputeReason(),
	})
}

// RaiseDisputeCommandHandler handles invoice disputes. Raising a dispute
// freezes the invoice against any further line items, and the freeze plus
// its audit entry commit together before the command returns.
type RaiseDisputeCommandHandler struct {
	uowFactory     BillingUoWFactory
	staffDirectory ports.LabStaffDirectory
}

// NewRaiseDisputeCommandHandler creates a handler for dispute raising.
func NewRaiseDisputeCommandHandler(
	uowFactory BillingUoWFactory,
	staffDirectory ports.LabStaffDirectory,
) RaiseDisputeCommandHandler {
	return RaiseDisputeCommandHandler{
		uowFactory:     uowFactory,
		staffDirectory: staffDirectory,
	}
}

// Handle processes the dispute raise command.
func (h *RaiseDisputeCommandHandler) Handle(ctx context.Context, cmd RaiseDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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

	o, err := uow.OrderRepository().Get(ctx, invoice.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorize(ctx, cmd, o); err != nil {
		return err
	}

	oldValue, err := snapshotInvoice(invoice)
	if err != nil {
		return err
	}

	if err = invoice.RaiseDispute(cmd.Reason()); err != nil {
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
		kernel.NewUUID(), cmd.ActorID(), "RaiseDispute", "Invoice", invoice.ID(),
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

func (h *RaiseDisputeCommandHandler) authorize(ctx context.Context, cmd RaiseDisputeCommand, o *order.Order) error {
	switch cmd.ActorRole() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleDoctor:
		if o.IsOwnedBy(cmd.ActorID()) {
			return nil
		}
	case kernel.RoleLabStaff:
		if o.AssignedLabID() != nil {
			staff, err := h.staffDirectory.StaffIDs(ctx, *o.AssignedLabID())
			if err != nil {
				return err
			}
			if slices.Contains(staff, cmd.ActorID()) {
				return nil
			}
		}
	}
	return errs.NewAuthorizationError(cmd.ActorID().String(), "raise dispute")
}
