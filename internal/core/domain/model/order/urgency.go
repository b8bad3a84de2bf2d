package order

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// Urgency classifies how quickly a work order must be produced.
// Pricing rules may scope themselves to a specific urgency level.
type Urgency int

const (
	// UrgencyUnknown represents an invalid or undefined urgency.
	UrgencyUnknown Urgency = iota

	// UrgencyNormal is the default production priority.
	UrgencyNormal

	// UrgencyUrgent marks rush work, typically surcharged by pricing rules.
	UrgencyUrgent
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUnknown: "Unknown",
		UrgencyNormal:  "Normal",
		UrgencyUrgent:  "Urgent",
	}
}

// Validate checks if the Urgency value is valid.
func (u Urgency) Validate() error {
	if u != UrgencyNormal && u != UrgencyUrgent {
		return errs.NewValueIsInvalidErrorWithCause("urgency", fmt.Errorf("%d is not a valid urgency", u))
	}
	return nil
}

// String returns the human-readable name of the urgency level.
func (u Urgency) String() string {
	if str, ok := getUrgencyStrings()[u]; ok {
		return str
	}
	return "Unknown"
}

// UrgencyFromString parses an urgency name as it appears over the wire.
func UrgencyFromString(s string) (Urgency, error) {
	switch s {
	case "Normal":
		return UrgencyNormal, nil
	case "Urgent":
		return UrgencyUrgent, nil
	default:
		return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause("urgency", fmt.Errorf("%q is not a valid urgency", s))
	}
}
