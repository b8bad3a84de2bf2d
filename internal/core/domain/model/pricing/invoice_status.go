package pricing

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// InvoiceStatus represents the dispute state of an invoice.
//
// State transitions:
//
//	Open ──> Disputed ──> Resolved ──> Disputed ...
//
// While Disputed, the invoice is frozen: no automatic or manual line items
// may be added until an admin resolves the dispute.
type InvoiceStatus int

const (
	// InvoiceStatusUnknown represents an invalid or undefined status.
	InvoiceStatusUnknown InvoiceStatus = iota

	// InvoiceOpen accepts line items from billing evaluations and overrides.
	InvoiceOpen

	// InvoiceDisputed is frozen pending admin resolution.
	InvoiceDisputed

	// InvoiceResolved had its dispute settled; line items may flow again.
	InvoiceResolved
)

func getInvoiceStatusStrings() map[InvoiceStatus]string {
	return map[InvoiceStatus]string{
		InvoiceStatusUnknown: "Unknown",
		InvoiceOpen:          "Open",
		InvoiceDisputed:      "Disputed",
		InvoiceResolved:      "Resolved",
	}
}

// Validate checks if the status value is valid.
func (s InvoiceStatus) Validate() error {
	switch s {
	case InvoiceOpen, InvoiceDisputed, InvoiceResolved:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("invoiceStatus",
			fmt.Errorf("%d is not a valid invoice status", s))
	}
}

// String returns the human-readable name of the status.
func (s InvoiceStatus) String() string {
	if str, ok := getInvoiceStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
