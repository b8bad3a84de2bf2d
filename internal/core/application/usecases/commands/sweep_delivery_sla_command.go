package commands

import (
	"errors"

	"dentallab/internal/pkg/guard"
)

// SweepDeliverySlaCommand triggers the periodic delivery SLA sweep. The sweep
// finds Delivered orders whose confirmation is overdue and runs the SLA
// billing evaluation for each of them.
//
// Example:
//
//	cmd := NewSweepDeliverySlaCommand()
//	handler := NewSweepDeliverySlaCommandHandler(uowFactory, 72*time.Hour)
//
//	// Run periodically from a scheduled job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("SLA sweep failed: %v", err)
//	}
type SweepDeliverySlaCommand struct {
	guard guard.ConstructorGuard
}

var ErrSweepDeliverySlaCommandIsNotConstructed = errors.New(
	"SweepDeliverySlaCommand must be created via NewSweepDeliverySlaCommand constructor",
)

// NewSweepDeliverySlaCommand creates a command to trigger the SLA sweep.
// This is a parameterless command that processes all overdue deliveries.
func NewSweepDeliverySlaCommand() SweepDeliverySlaCommand {
	return SweepDeliverySlaCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepDeliverySlaCommand) Validate() error {
	return c.guard.Validate(ErrSweepDeliverySlaCommandIsNotConstructed)
}
