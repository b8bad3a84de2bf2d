package commands

import (
	"errors"

	"dentallab/internal/pkg/errs"
	"dentallab/internal/pkg/guard"
)

// DeliverNotificationsCommand triggers a drain of unsent notifications to the
// push transport. Each run delivers up to Limit records.
//
// Example:
//
//	cmd, err := NewDeliverNotificationsCommand(100)
//	if err != nil {
//	    return err
//	}
//	handler := NewDeliverNotificationsCommandHandler(uowFactory, transport)
//
//	// Run periodically from a scheduled job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Notification delivery failed: %v", err)
//	}
type DeliverNotificationsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

var ErrDeliverNotificationsCommandIsNotConstructed = errors.New(
	"DeliverNotificationsCommand must be created via NewDeliverNotificationsCommand constructor",
)

// NewDeliverNotificationsCommand creates a command to drain up to limit
// unsent notifications.
func NewDeliverNotificationsCommand(limit int) (DeliverNotificationsCommand, error) {
	if limit <= 0 {
		return DeliverNotificationsCommand{}, errs.NewValueIsInvalidError("limit")
	}

	return DeliverNotificationsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDeliverNotificationsCommandIsNotConstructed)
}

// Limit returns the maximum number of notifications delivered per run.
func (c DeliverNotificationsCommand) Limit() int {
	return c.limit
}
