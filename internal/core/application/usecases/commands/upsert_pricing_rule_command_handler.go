package commands

import (
	"context"
	"encoding/json"
	"errors"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"
)

// ruleSnapshot is the audit trail representation of a pricing rule.
type ruleSnapshot struct {
	RuleType        string  `json:"ruleType"`
	RestorationType *string `json:"restorationType,omitempty"`
	Urgency         *string `json:"urgency,omitempty"`
	Amount          string  `json:"amount"`
	IsPercentage    bool    `json:"isPercentage"`
	Priority        int     `json:"priority"`
	IsActive        bool    `json:"isActive"`
}

func snapshotRule(rule *pricing.Rule) ([]byte, error) {
	snap := ruleSnapshot{
		RuleType:     rule.Type().String(),
		Amount:       rule.Amount().String(),
		IsPercentage: rule.IsPercentage(),
		Priority:     rule.Priority(),
		IsActive:     rule.IsActive(),
	}
	if rule.RestorationType() != nil {
		s := rule.RestorationType().String()
		snap.RestorationType = &s
	}
	if rule.Urgency() != nil {
		s := rule.Urgency().String()
		snap.Urgency = &s
	}
	return json.Marshal(snap)
}

// UpsertPricingRuleCommandHandler handles pricing rule creation and edits.
// Admin only. The audit entry carries the previous rule state, nil when the
// rule is new.
type UpsertPricingRuleCommandHandler struct {
	uowFactory BillingUoWFactory
}

// NewUpsertPricingRuleCommandHandler creates a handler for rule upserts.
func NewUpsertPricingRuleCommandHandler(uowFactory BillingUoWFactory) UpsertPricingRuleCommandHandler {
	return UpsertPricingRuleCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rule upsert command.
func (h *UpsertPricingRuleCommandHandler) Handle(ctx context.Context, cmd UpsertPricingRuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.ActorRole() != kernel.RoleAdmin {
		return errs.NewAuthorizationError(cmd.ActorID().String(), "upsert pricing rule")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ruleRepo := uow.PricingRuleRepository()

	var oldValue []byte
	existing, err := ruleRepo.Get(ctx, cmd.Rule().ID())
	switch {
	case err == nil:
		if oldValue, err = snapshotRule(existing); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
	default:
		return err
	}

	if err = ruleRepo.Upsert(ctx, cmd.Rule()); err != nil {
		return err
	}

	newValue, err := snapshotRule(cmd.Rule())
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), "UpsertPricingRule", "PricingRule", cmd.Rule().ID(),
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
