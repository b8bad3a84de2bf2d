package pricing

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// SourceEvent names the lifecycle event or command that triggered a billing
// evaluation. Every produced line item records its source event for
// traceability.
type SourceEvent int

const (
	// SourceEventUnknown represents an invalid or undefined source event.
	SourceEventUnknown SourceEvent = iota

	// SourceOrderCreated bills charges due at order creation.
	SourceOrderCreated

	// SourceLabAccepted bills charges due when a lab is assigned.
	SourceLabAccepted

	// SourceDeliveryConfirmed bills charges due at confirmed delivery.
	SourceDeliveryConfirmed

	// SourceFeedbackApproved bills bonuses tied to approved feedback.
	SourceFeedbackApproved

	// SourceAdminOverride marks a manual line item added by an admin.
	SourceAdminOverride

	// SourceReworkDetected bills penalties for detected rework.
	SourceReworkDetected

	// SourceSlaCalculation bills penalties computed by the SLA sweep.
	SourceSlaCalculation
)

func getSourceEventStrings() map[SourceEvent]string {
	return map[SourceEvent]string{
		SourceEventUnknown:      "Unknown",
		SourceOrderCreated:      "OrderCreated",
		SourceLabAccepted:       "LabAccepted",
		SourceDeliveryConfirmed: "DeliveryConfirmed",
		SourceFeedbackApproved:  "FeedbackApproved",
		SourceAdminOverride:     "AdminOverride",
		SourceReworkDetected:    "ReworkDetected",
		SourceSlaCalculation:    "SlaCalculation",
	}
}

// Validate checks if the source event is valid.
func (e SourceEvent) Validate() error {
	if _, ok := getSourceEventStrings()[e]; !ok || e == SourceEventUnknown {
		return errs.NewValueIsInvalidErrorWithCause("sourceEvent", fmt.Errorf("%d is not a valid source event", e))
	}
	return nil
}

// String returns the human-readable name of the source event.
func (e SourceEvent) String() string {
	if str, ok := getSourceEventStrings()[e]; ok {
		return str
	}
	return "Unknown"
}
