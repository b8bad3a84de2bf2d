package commands

import (
	"context"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// DeletePricingRuleCommandHandler handles pricing rule removal. Admin only.
// The audit entry keeps the deleted rule's last state as its old value.
type DeletePricingRuleCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewDeletePricingRuleCommandHandler creates a handler for rule deletion.
func NewDeletePricingRuleCommandHandler(uowFactory BillingUoWFactory) DeletePricingRuleCommandHandler {
	return DeletePricingRuleCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rule deletion command.
func (h *DeletePricingRuleCommandHandler) Handle(ctx context.Context, cmd DeletePricingRuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.ActorRole() != kernel.RoleAdmin {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "delete pricing rule")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ruleRepo := uow.PricingRuleRepository()
	existing, err := ruleRepo.Get(ctx, cmd.RuleID())
	if err != nil {
		return err
	}

	oldValue, err := snapshotRule(existing)
	if err != nil {
		return err
	}

	if err = ruleRepo.Delete(ctx, cmd.RuleID()); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), "DeletePricingRule", "PricingRule", cmd.RuleID(),
		oldValue, nil,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
