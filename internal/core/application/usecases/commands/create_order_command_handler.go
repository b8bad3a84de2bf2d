package commands

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Creates the order in Pending status, opens its invoice, runs the pricing
// engine for the OrderCreated event and notifies the involved parties.
type CreateOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	staffDirectory ports.LabStaffDirectory
	engine         services.PricingEngine
	resolver       services.RecipientResolver
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	staffDirectory ports.LabStaffDirectory,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		staffDirectory: staffDirectory,
		engine:         services.NewPricingEngine(),
		resolver:       services.NewRecipientResolver(),
	}
}

// Handle processes the order placement command. Order, invoice, line items
// and notification records commit in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var targetBudget *kernel.Money
	if cmd.TargetBudget() != nil {
		budget, err := kernel.NewMoney(*cmd.TargetBudget())
		if err != nil {
			return err
		}
		targetBudget = &budget
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.DoctorID(),
		cmd.RestorationType(),
		cmd.Urgency(),
		targetBudget,
		cmd.AssignedLabID(),
	)
	if err != nil {
		return err
	}

	labStaff, err := assignedLabStaff(ctx, h.staffDirectory, newOrder)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = evaluateBilling(ctx, uow, h.engine, newOrder, pricing.SourceOrderCreated); err != nil {
		return err
	}

	err = notifyRecipients(
		ctx, uow.NotificationRepository(), h.resolver,
		newOrder, labStaff, cmd.DoctorID(), false,
		"New work order",
		"A new "+cmd.RestorationType().String()+" order was placed",
	)
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
