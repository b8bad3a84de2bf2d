package commands

import (
	"context"
	"time"

	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/core/domain/services"
)

// SweepDeliverySlaCommandHandler processes periodic delivery SLA sweeps.
//
// Orders that were marked Delivered longer than the confirmation window ago
// and are still unconfirmed get an SLA billing evaluation. Line item ids are
// deterministic per (event, rule), so repeated sweeps of the same order do
// not duplicate charges.
type SweepDeliverySlaCommandHandler struct {
	uowFactory         OrderUoWFactory
	confirmationWindow time.Duration
	engine             services.PricingEngine
}

// NewSweepDeliverySlaCommandHandler creates a handler for SLA sweep commands.
func NewSweepDeliverySlaCommandHandler(
	uowFactory OrderUoWFactory,
	confirmationWindow time.Duration,
) SweepDeliverySlaCommandHandler {
	return SweepDeliverySlaCommandHandler{
		uowFactory:         uowFactory,
		confirmationWindow: confirmationWindow,
		engine:             services.NewPricingEngine(),
	}
}

// Handle executes the SLA sweep.
func (h *SweepDeliverySlaCommandHandler) Handle(ctx context.Context, cmd SweepDeliverySlaCommand) error {
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

	orders, err := uow.OrderRepository().GetDeliveredUnconfirmed(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-h.confirmationWindow)
	for _, o := range orders {
		if !deliveredBefore(o, cutoff) {
			continue
		}
		if err = evaluateBilling(ctx, uow, h.engine, o, pricing.SourceSlaCalculation); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func deliveredBefore(o *order.Order, cutoff time.Time) bool {
	deliveredAt := o.StatusUpdatedAt()
	if o.ActualDeliveryDate() != nil {
		deliveredAt = *o.ActualDeliveryDate()
	}
	return deliveredAt.Before(cutoff)
}
