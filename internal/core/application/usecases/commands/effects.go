package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/notification"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/domain/services"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"
)

// billingRepos is the repository slice needed to evaluate a billable event.
type billingRepos interface {
	PricingRuleRepoFactory
	InvoiceRepoFactory
}

// evaluateBilling runs the pricing engine for one billable event on an order
// and appends the produced line items to the order's invoice. The invoice is
// created on first use. A Disputed invoice rejects the append and the whole
// command fails with GuardViolation(InvoiceFrozen).
func evaluateBilling(
	ctx context.Context,
	repos billingRepos,
	engine services.PricingEngine,
	o *order.Order,
	event pricing.SourceEvent,
) error {
	invoiceRepo := repos.InvoiceRepository()

	invoice, err := invoiceRepo.GetByOrder(ctx, o.ID())
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrObjectNotFound):
		invoice, err = pricing.NewInvoice(kernel.NewUUID(), o.ID())
		if err != nil {
			return err
		}
		if err = invoiceRepo.Add(ctx, invoice); err != nil {
			return err
		}
	default:
		return err
	}

	rules, err := repos.PricingRuleRepository().GetActive(ctx)
	if err != nil {
		return err
	}

	items, err := engine.Evaluate(invoice, o, rules, event, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	if err = invoice.AppendLineItems(items...); err != nil {
		return err
	}
	return invoiceRepo.Update(ctx, invoice)
}

// notifyRecipients creates one notification record per resolved recipient.
// Records are persisted in the command's transaction; actual push delivery
// happens later and never affects the command outcome.
func notifyRecipients(
	ctx context.Context,
	repo ports.NotificationRepository,
	resolver services.RecipientResolver,
	o *order.Order,
	labStaffIDs []kernel.UUID,
	actorID kernel.UUID,
	excludeActor bool,
	title string,
	body string,
) error {
	recipients := resolver.Resolve(o.DoctorID(), labStaffIDs, actorID, excludeActor)

	for _, recipientID := range recipients {
		n, err := notification.NewNotification(
			kernel.NewUUID(),
			recipientID,
			o.ID(),
			title,
			body,
			fmt.Sprintf("/orders/%s", o.ID()),
		)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// assignedLabStaff resolves the staff ids of the order's assigned lab,
// empty when no lab is assigned yet.
func assignedLabStaff(ctx context.Context, directory ports.LabStaffDirectory, o *order.Order) ([]kernel.UUID, error) {
	if o.AssignedLabID() == nil {
		return nil, nil
	}
	return directory.StaffIDs(ctx, *o.AssignedLabID())
}
