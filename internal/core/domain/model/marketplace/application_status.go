package marketplace

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// ApplicationStatus represents the state of a lab's marketplace application.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          ├──> Rejected    (permanent: the lab may never re-apply)
//	          └──> Superseded  (a competing application was accepted first)
//
// Accepted, Rejected and Superseded are all terminal.
type ApplicationStatus int

const (
	// ApplicationStatusUnknown represents an invalid or undefined status.
	ApplicationStatusUnknown ApplicationStatus = iota

	// ApplicationPending is the initial status after a lab applies.
	// Multiple labs may hold Pending applications for the same order.
	ApplicationPending

	// ApplicationAccepted means the doctor chose this application.
	// At most one application per order may ever reach this status.
	ApplicationAccepted

	// ApplicationRejected means the doctor declined this application.
	// Rejection is permanent for the (order, lab) pair.
	ApplicationRejected

	// ApplicationSuperseded means a competing application on the same
	// order was accepted while this one was still pending.
	ApplicationSuperseded
)

func getApplicationStatusStrings() map[ApplicationStatus]string {
	return map[ApplicationStatus]string{
		ApplicationStatusUnknown: "Unknown",
		ApplicationPending:       "Pending",
		ApplicationAccepted:      "Accepted",
		ApplicationRejected:      "Rejected",
		ApplicationSuperseded:    "Superseded",
	}
}

// Validate checks if the status value is valid.
func (s ApplicationStatus) Validate() error {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationSuperseded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("applicationStatus",
			fmt.Errorf("%d is not a valid application status", s))
	}
}

// String returns the human-readable name of the status.
func (s ApplicationStatus) String() string {
	if str, ok := getApplicationStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the application can change no further.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected || s == ApplicationSuperseded
}
