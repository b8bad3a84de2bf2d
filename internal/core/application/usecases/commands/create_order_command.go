package commands

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a doctor's request to place a new work order.
// The doctor either assigns a known lab directly or leaves the order
// unassigned for later marketplace submission.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), doctorID, "Zirconia", order.UrgencyUrgent, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, staffDirectory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	doctorID        kernel.UUID
	restorationType order.RestorationType
	urgency         order.Urgency
	targetBudget    *decimal.Decimal
	assignedLabID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new work order.
// Validates identifiers, restoration type and urgency; targetBudget and
// assignedLabID are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	doctorID kernel.UUID,
	restorationType order.RestorationType,
	urgency order.Urgency,
	targetBudget *decimal.Decimal,
	assignedLabID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDoctorID(doctorID),
		cmd.setRestorationType(restorationType),
		cmd.setUrgency(urgency),
		cmd.setAssignedLabID(assignedLabID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.targetBudget = targetBudget
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DoctorID returns the ordering doctor.
func (c CreateOrderCommand) DoctorID() kernel.UUID {
	return c.doctorID
}

// RestorationType returns the kind of restoration ordered.
func (c CreateOrderCommand) RestorationType() order.RestorationType {
	return c.restorationType
}

// Urgency returns the order urgency.
func (c CreateOrderCommand) Urgency() order.Urgency {
	return c.urgency
}

// TargetBudget returns the doctor's optional budget expectation.
func (c CreateOrderCommand) TargetBudget() *decimal.Decimal {
	return c.targetBudget
}

// AssignedLabID returns the directly assigned lab, nil when unassigned.
func (c CreateOrderCommand) AssignedLabID() *kernel.UUID {
	return c.assignedLabID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDoctorID(doctorID kernel.UUID) error {
	if err := doctorID.Validate(); err != nil {
		return err
	}
	c.doctorID = doctorID
	return nil
}

func (c *CreateOrderCommand) setRestorationType(restorationType order.RestorationType) error {
	if err := restorationType.Validate(); err != nil {
		return err
	}
	c.restorationType = restorationType
	return nil
}

func (c *CreateOrderCommand) setUrgency(urgency order.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	c.urgency = urgency
	return nil
}

func (c *CreateOrderCommand) setAssignedLabID(assignedLabID *kernel.UUID) error {
	if assignedLabID == nil {
		return nil
	}
	if err := assignedLabID.Validate(); err != nil {
		return err
	}
	c.assignedLabID = assignedLabID
	return nil
}
