package commands

import (
	"context"

	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// ReportDeliveryIssueCommandHandler handles the issue path of the delivery
// confirmation sub-protocol. The note reaches the lab's staff as a
// notification; the reporting doctor is excluded from the recipient set.
// The order itself is not touched.
type ReportDeliveryIssueCommandHandler struct {
	uowFactory     OrderUoWFactory
	staffDirectory ports.LabStaffDirectory
	resolver       services.RecipientResolver
}

// NewReportDeliveryIssueCommandHandler creates a handler for delivery issue reports.
func NewReportDeliveryIssueCommandHandler(
	uowFactory OrderUoWFactory,
	staffDirectory ports.LabStaffDirectory,
) ReportDeliveryIssueCommandHandler {
	return ReportDeliveryIssueCommandHandler{
		uowFactory:     uowFactory,
		staffDirectory: staffDirectory,
		resolver:       services.NewRecipientResolver(),
	}
}

// Handle processes the issue report command.
func (h *ReportDeliveryIssueCommandHandler) Handle(ctx context.Context, cmd ReportDeliveryIssueCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "report delivery issue")
	}

	if err = o.CanReportDeliveryIssue(); err != nil {
		return err
	}

	labStaff, err := assignedLabStaff(ctx, h.staffDirectory, o)
	if err != nil {
		return err
	}

	err = notifyRecipients(
		ctx, uow.NotificationRepository(), h.resolver,
		o, labStaff, cmd.ActorID(), true,
		"Delivery issue reported",
		cmd.Note(),
	)
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
