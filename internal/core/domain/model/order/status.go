package order

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// Status represents the lifecycle state of a work order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct production workflow.
//
// State transitions:
//
//	Pending ──> InProgress ──> ReadyForQC ──> ReadyForDelivery ──> Delivered
//	   │            │              │                │
//	   └────────────┴──────────────┴────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no further status transitions are
// allowed from either. Delivered still carries the delivery confirmation
// sub-protocol, which is tracked on the aggregate, not in Status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly created order.
	Pending

	// InProgress indicates the assigned lab started fabrication.
	InProgress

	// ReadyForQC indicates fabrication finished and quality control
	// checks are outstanding.
	ReadyForQC

	// ReadyForDelivery indicates every QC checklist item passed and the
	// restoration awaits shipment.
	ReadyForDelivery

	// Delivered indicates the lab handed the restoration over.
	// Doctor-side confirmation is tracked separately on the aggregate.
	Delivered

	// Cancelled indicates the order was aborted before delivery.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Pending:          "Pending",
		InProgress:       "InProgress",
		ReadyForQC:       "ReadyForQC",
		ReadyForDelivery: "ReadyForDelivery",
		Delivered:        "Delivered",
		Cancelled:        "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "Pending",
		InProgress:       "InProgress",
		ReadyForQC:       "ReadyForQC",
		ReadyForDelivery: "ReadyForDelivery",
		Delivered:        "Delivered",
		Cancelled:        "Cancelled",
	}
}

// transitions holds the allowed forward edges of the state machine.
// Cancellation is handled separately because it is allowed from every
// non-terminal state.
func transitions() map[Status]Status {
	return map[Status]Status{
		Pending:          InProgress,
		InProgress:       ReadyForQC,
		ReadyForQC:       ReadyForDelivery,
		ReadyForDelivery: Delivered,
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as it appears over the wire.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further status transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo validates the edge from s to target without performing it.
//
// Allowed edges are the single forward step of the production flow plus
// cancellation from any non-terminal state. The QC guard on the
// ReadyForQC -> ReadyForDelivery edge is enforced by the aggregate, not here:
// Status only knows the shape of the machine.
func (s Status) CanTransitionTo(target Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if target == Cancelled {
		if s.IsTerminal() {
			return errs.NewValueIsInvalidErrorWithCause(
				"status",
				fmt.Errorf("%s is terminal and cannot be cancelled", s),
			)
		}
		return nil
	}

	if next, ok := transitions()[s]; ok && next == target {
		return nil
	}

	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("transition %s -> %s is not allowed", s, target),
	)
}
