package commands

import (
	"context"
	"slices"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// ApplyToOrderCommandHandler handles marketplace applications.
//
// Eligibility is checked before anything reaches storage: the actor must be
// staff of the applying lab, the lab must have completed onboarding and must
// not hold a Rejected application for the order. A rejected lab re-applying
// gets ConflictError(AlreadyRejected).
type ApplyToOrderCommandHandler struct {
	uowFactory     MarketplaceUoWFactory
	onboarding     ports.OnboardingChecker
	staffDirectory ports.LabStaffDirectory
	matcher        services.MarketplaceMatcher
}

// NewApplyToOrderCommandHandler creates a handler for marketplace applications.
func NewApplyToOrderCommandHandler(
	uowFactory MarketplaceUoWFactory,
	onboarding ports.OnboardingChecker,
	staffDirectory ports.LabStaffDirectory,
) ApplyToOrderCommandHandler {
	return ApplyToOrderCommandHandler{
		uowFactory:     uowFactory,
		onboarding:     onboarding,
		staffDirectory: staffDirectory,
		matcher:        services.NewMarketplaceMatcher(),
	}
}

// Handle processes the application command.
func (h *ApplyToOrderCommandHandler) Handle(ctx context.Context, cmd ApplyToOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.ActorRole() != kernel.RoleLabStaff {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "apply to order")
	}

	labStaff, err := h.staffDirectory.StaffIDs(ctx, cmd.LabID())
	if err != nil {
		return errs.NewOperationFailedError("lab staff lookup", err)
	}
	if !slices.Contains(labStaff, cmd.ActorID()) {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "apply to order")
	}

	onboarded, err := h.onboarding.IsOnboarded(ctx, cmd.LabID())
	if err != nil {
		return errs.NewOperationFailedError("onboarding lookup", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	appRepo := uow.ApplicationRepository()
	previous, err := appRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	app, err := h.matcher.NewApplication(o, cmd.LabID(), onboarded, previous)
	if err != nil {
		return err
	}

	if err = appRepo.Add(ctx, app); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
