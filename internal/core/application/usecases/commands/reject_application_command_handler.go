package commands

import (
	"context"

	"dentallab/internal/pkg/errs"
)

// RejectApplicationCommandHandler handles application rejection. A rejected
// application stays on record: it is what permanently blocks the lab from
// seeing or re-applying to the order.
type RejectApplicationCommandHandler struct {
	uowFactory MarketplaceUoWFactory
}

// NewRejectApplicationCommandHandler creates a handler for application rejection.
func NewRejectApplicationCommandHandler(uowFactory MarketplaceUoWFactory) RejectApplicationCommandHandler {
	return RejectApplicationCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rejection command.
func (h *RejectApplicationCommandHandler) Handle(ctx context.Context, cmd RejectApplicationCommand) error {
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

	appRepo := uow.ApplicationRepository()
	app, err := appRepo.Get(ctx, cmd.ApplicationID())
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, app.OrderID())
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "reject application")
	}

	if err = app.Reject(); err != nil {
		return err
	}

	if err = appRepo.Update(ctx, app); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
