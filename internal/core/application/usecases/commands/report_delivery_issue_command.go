package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
	"dentallab/internal/pkg/guard"
)

var ErrReportDeliveryIssueCommandIsNotConstructed = errors.New(
	"ReportDeliveryIssueCommand must be created via NewReportDeliveryIssueCommand constructor",
)

// ReportDeliveryIssueCommand represents a doctor flagging a problem with a
// delivered restoration. Reporting performs no status transition: the order
// stays Delivered with confirmation still pending, only a note reaches the
// lab.
type ReportDeliveryIssueCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

// NewReportDeliveryIssueCommand creates a delivery issue report command.
func NewReportDeliveryIssueCommand(orderID, actorID kernel.UUID, note string) (ReportDeliveryIssueCommand, error) {
	cmd := ReportDeliveryIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ReportDeliveryIssueCommand{}, err
	}
	if note == "" {
		return ReportDeliveryIssueCommand{}, errs.NewValueIsRequiredError("note")
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportDeliveryIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportDeliveryIssueCommandIsNotConstructed)
}

// OrderID returns the order with the reported issue.
func (c ReportDeliveryIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the reporting doctor.
func (c ReportDeliveryIssueCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the issue description.
func (c ReportDeliveryIssueCommand) Note() string {
	return c.note
}
