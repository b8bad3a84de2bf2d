package commands

import (
	"context"

	"dentallab/internal/pkg/errs"
)

// SubmitToMarketplaceCommandHandler opens an unassigned order for lab
// applications. Only the ordering doctor may submit.
type SubmitToMarketplaceCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSubmitToMarketplaceCommandHandler creates a handler for marketplace submission.
func NewSubmitToMarketplaceCommandHandler(uowFactory OrderUoWFactory) SubmitToMarketplaceCommandHandler {
	return SubmitToMarketplaceCommandHandler{uowFactory: uowFactory}
}

// Handle processes the marketplace submission command.
func (h *SubmitToMarketplaceCommandHandler) Handle(ctx context.Context, cmd SubmitToMarketplaceCommand) error {
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
		return errs.NewAuthorizationError(cmd.ActorID().String(), "submit order to marketplace")
	}

	if err = o.SubmitToMarketplace(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
