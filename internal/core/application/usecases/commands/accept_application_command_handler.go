package commands

import (
	"context"
	"fmt"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// AcceptApplicationCommandHandler handles the race-sensitive acceptance of
// a marketplace application.
//
// The order assignment is written conditionally: the row only updates while
// no lab is assigned yet. When two doctor sessions accept concurrently the
// second conditional write matches nothing and the command fails with
// ConflictError(AlreadyAssigned) before any application row changes.
// Winner acceptance, superseding of rival applications, the LabAccepted
// billing evaluation and notifications commit in one transaction.
type AcceptApplicationCommandHandler struct {
	uowFactory     MarketplaceUoWFactory
	staffDirectory ports.LabStaffDirectory
	matcher        services.MarketplaceMatcher
	engine         services.PricingEngine
	resolver       services.RecipientResolver
}

// NewAcceptApplicationCommandHandler creates a handler for application acceptance.
func NewAcceptApplicationCommandHandler(
	uowFactory MarketplaceUoWFactory,
	staffDirectory ports.LabStaffDirectory,
) AcceptApplicationCommandHandler {
	return AcceptApplicationCommandHandler{
		uowFactory:     uowFactory,
		staffDirectory: staffDirectory,
		matcher:        services.NewMarketplaceMatcher(),
		engine:         services.NewPricingEngine(),
		resolver:       services.NewRecipientResolver(),
	}
}

// Handle processes the acceptance command.
func (h *AcceptApplicationCommandHandler) Handle(ctx context.Context, cmd AcceptApplicationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var agreedFee *kernel.Money
	if cmd.AgreedFee() != nil {
		fee, err := kernel.NewMoney(*cmd.AgreedFee())
		if err != nil {
			return err
		}
		agreedFee = &fee
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	appRepo := uow.ApplicationRepository()
	winner, err := appRepo.Get(ctx, cmd.ApplicationID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, winner.OrderID())
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "accept application")
	}

	others, err := appRepo.GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	superseded, err := h.matcher.Accept(o, winner, agreedFee, others)
	if err != nil {
		return err
	}

	assigned, err := orderRepo.AssignLabConditionally(ctx, o)
	if err != nil {
		return err
	}
	if !assigned {
		return errs.NewConflictError(errs.ConflictAlreadyAssigned,
			fmt.Sprintf("order %s was assigned concurrently", o.ID()))
	}

	if err = appRepo.Update(ctx, winner); err != nil {
		return err
	}
	for _, app := range superseded {
		if err = appRepo.Update(ctx, app); err != nil {
			return err
		}
	}

	if err = evaluateBilling(ctx, uow, h.engine, o, pricing.SourceLabAccepted); err != nil {
		return err
	}

	labStaff, err := h.staffDirectory.StaffIDs(ctx, winner.LabID())
	if err != nil {
		return err
	}

	err = notifyRecipients(
		ctx, uow.NotificationRepository(), h.resolver,
		o, labStaff, cmd.ActorID(), false,
		"Application accepted",
		"The order was assigned to your lab",
	)
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
