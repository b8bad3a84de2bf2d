package commands

import (
	"context"

	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler handles the doctor side of the delivery
// confirmation sub-protocol. Confirmation clears the pending flag, stamps
// the actual delivery date and fires the DeliveryConfirmed billing event.
type ConfirmDeliveryCommandHandler struct {
	uowFactory     OrderUoWFactory
	staffDirectory ports.LabStaffDirectory
	engine         services.PricingEngine
	resolver       services.RecipientResolver
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	staffDirectory ports.LabStaffDirectory,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory:     uowFactory,
		staffDirectory: staffDirectory,
		engine:         services.NewPricingEngine(),
		resolver:       services.NewRecipientResolver(),
	}
}

// Handle processes the confirmation command.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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

	if !o.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "confirm delivery")
	}

	if err = o.ConfirmDelivery(cmd.ActorID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = evaluateBilling(ctx, uow, h.engine, o, pricing.SourceDeliveryConfirmed); err != nil {
		return err
	}

	labStaff, err := assignedLabStaff(ctx, h.staffDirectory, o)
	if err != nil {
		return err
	}

	err = notifyRecipients(
		ctx, uow.NotificationRepository(), h.resolver,
		o, labStaff, cmd.ActorID(), false,
		"Delivery confirmed",
		"The doctor confirmed the delivery",
	)
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
