package commands

import (
	"context"
	"fmt"
	"slices"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// UpdateStatusCommandHandler handles order lifecycle transitions.
//
// The ReadyForQC to ReadyForDelivery transition is guarded by the external
// QC checklist: it fails with GuardViolation(QCIncomplete) while any item
// is open. Every accepted transition appends a history row and notifies
// the doctor and the assigned lab's staff, the acting user included.
type UpdateStatusCommandHandler struct {
	uowFactory     OrderUoWFactory
	qcChecklist    ports.QCChecklist
	staffDirectory ports.LabStaffDirectory
	resolver       services.RecipientResolver
}

// NewUpdateStatusCommandHandler creates a handler for status transitions.
func NewUpdateStatusCommandHandler(
	uowFactory OrderUoWFactory,
	qcChecklist ports.QCChecklist,
	staffDirectory ports.LabStaffDirectory,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory:     uowFactory,
		qcChecklist:    qcChecklist,
		staffDirectory: staffDirectory,
		resolver:       services.NewRecipientResolver(),
	}
}

// Handle processes the status change command.
func (h *UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	labStaff, err := assignedLabStaff(ctx, h.staffDirectory, o)
	if err != nil {
		return err
	}

	if err = h.authorize(cmd, o, labStaff); err != nil {
		return err
	}

	qcComplete := false
	if cmd.Target() == order.ReadyForDelivery {
		qcComplete, err = h.qcChecklist.AllItemsComplete(ctx, o.ID())
		if err != nil {
			return errs.NewOperationFailedError("qc checklist lookup", err)
		}
	}

	entry, err := o.ChangeStatus(cmd.Target(), cmd.ActorID(), qcComplete, cmd.Notes())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	err = notifyRecipients(
		ctx, uow.NotificationRepository(), h.resolver,
		o, labStaff, cmd.ActorID(), false,
		"Order status changed",
		fmt.Sprintf("Order moved from %s to %s", entry.OldStatus(), entry.NewStatus()),
	)
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// authorize enforces row level access: doctors act on their own orders,
// lab staff on orders assigned to their lab, admins on any order.
func (h *UpdateStatusCommandHandler) authorize(cmd UpdateStatusCommand, o *order.Order, labStaff []kernel.UUID) error {
	switch cmd.ActorRole() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleDoctor:
		if o.IsOwnedBy(cmd.ActorID()) {
			return nil
		}
	case kernel.RoleLabStaff:
		if slices.Contains(labStaff, cmd.ActorID()) {
			return nil
		}
	}
	return errs.NewAuthorizationError(cmd.ActorID().String(), "update order status")
}
