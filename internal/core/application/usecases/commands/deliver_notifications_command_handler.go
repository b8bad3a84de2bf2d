package commands

import (
	"context"
	"time"

	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/retry"
)

// DeliverNotificationsCommandHandler drains unsent notification records to
// the push transport.
//
// No transaction is opened: each record is marked sent on its own, so one
// failing push does not undo deliveries that already happened. Pushes go
// through a bounded retry policy for transient faults. A record that still
// fails after retries stays unsent and is picked up again on the next run;
// delivery is therefore at least once.
type DeliverNotificationsCommandHandler struct {
	uowFactory OrderUoWFactory
	transport  ports.NotificationTransport
	policy     retry.Policy
}

// NewDeliverNotificationsCommandHandler creates a handler for notification
// delivery commands.
func NewDeliverNotificationsCommandHandler(
	uowFactory OrderUoWFactory,
	transport ports.NotificationTransport,
) DeliverNotificationsCommandHandler {
	return DeliverNotificationsCommandHandler{
		uowFactory: uowFactory,
		transport:  transport,
		policy:     retry.DefaultPolicy(),
	}
}

// Handle drains up to cmd.Limit() unsent notifications. Returns the first
// persistence error; push failures are swallowed so the remaining records
// still get their attempt.
func (h *DeliverNotificationsCommandHandler) Handle(ctx context.Context, cmd DeliverNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	repo := h.uowFactory.Create().NotificationRepository()

	pending, err := repo.GetUnsent(ctx, cmd.Limit())
	if err != nil {
		return err
	}

	for _, n := range pending {
		pushErr := h.policy.Do(ctx, func(ctx context.Context) error {
			return h.transport.Push(ctx, n)
		})
		if pushErr != nil {
			continue
		}

		if err = n.MarkSent(time.Now().UTC()); err != nil {
			return err
		}
		if err = repo.Update(ctx, n); err != nil {
			return err
		}
	}

	return nil
}
