package http

import (
	"time"

	"dentallab/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the payload for creating a work order.
type CreateOrderRequest struct {
	DoctorID        string           `json:"doctorId"`
	RestorationType string           `json:"restorationType"`
	Urgency         string           `json:"urgency"`
	TargetBudget    *decimal.Decimal `json:"targetBudget,omitempty"`
	AssignedLabID   *string          `json:"assignedLabId,omitempty"`
}

// CreateOrderResponse returns the id of the created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// UpdateStatusRequest is the payload for a lifecycle transition.
type UpdateStatusRequest struct {
	Target string  `json:"target"`
	Notes  *string `json:"notes,omitempty"`
}

// ApplyToOrderRequest is the payload for a lab's marketplace application.
type ApplyToOrderRequest struct {
	LabID string `json:"labId"`
}

// AcceptApplicationRequest is the payload for accepting an application.
type AcceptApplicationRequest struct {
	AgreedFee *decimal.Decimal `json:"agreedFee,omitempty"`
}

// ReportDeliveryIssueRequest is the payload for reporting a delivery problem.
type ReportDeliveryIssueRequest struct {
	Note string `json:"note"`
}

// RaiseDisputeRequest is the payload for disputing an invoice.
type RaiseDisputeRequest struct {
	Reason string `json:"reason"`
}

// AddInvoiceOverrideRequest is the payload for a manual invoice adjustment.
type AddInvoiceOverrideRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// UpsertPricingRuleRequest is the payload for creating or replacing a rule.
type UpsertPricingRuleRequest struct {
	RuleType        string          `json:"ruleType"`
	RestorationType *string         `json:"restorationType,omitempty"`
	Urgency         *string         `json:"urgency,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	IsPercentage    bool            `json:"isPercentage"`
	Priority        int             `json:"priority"`
	IsActive        bool            `json:"isActive"`
}

// MarketplaceOrder is one open order in a lab's marketplace listing.
type MarketplaceOrder struct {
	ID              string           `json:"id"`
	RestorationType string           `json:"restorationType"`
	Urgency         string           `json:"urgency"`
	TargetBudget    *decimal.Decimal `json:"targetBudget,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// HistoryEntry is one status transition in an order's timeline.
type HistoryEntry struct {
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Notes     *string   `json:"notes,omitempty"`
}

// Invoice is an order's invoice with its line items.
type Invoice struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	Status        string          `json:"status"`
	DisputeReason *string         `json:"disputeReason,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Items         []InvoiceLine   `json:"items"`
}

// InvoiceLine is one line of an invoice.
type InvoiceLine struct {
	ID          string          `json:"id"`
	LineType    string          `json:"lineType"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PendingApplication is one open application on an order.
type PendingApplication struct {
	ID        string    `json:"id"`
	LabID     string    `json:"labId"`
	AppliedAt time.Time `json:"appliedAt"`
}

func toMarketplaceOrders(results []queries.GetMarketplaceOrdersQueryResponse) []MarketplaceOrder {
	orders := make([]MarketplaceOrder, len(results))
	for i, result := range results {
		orders[i] = MarketplaceOrder{
			ID:              result.ID.String(),
			RestorationType: result.RestorationType,
			Urgency:         result.Urgency,
			TargetBudget:    result.TargetBudget,
			CreatedAt:       result.CreatedAt,
		}
	}
	return orders
}

func toHistoryEntries(results []queries.GetOrderHistoryQueryResponse) []HistoryEntry {
	entries := make([]HistoryEntry, len(results))
	for i, result := range results {
		entries[i] = HistoryEntry{
			OldStatus: result.OldStatus,
			NewStatus: result.NewStatus,
			ChangedBy: result.ChangedBy.String(),
			ChangedAt: result.ChangedAt,
			Notes:     result.Notes,
		}
	}
	return entries
}

func toInvoice(result queries.GetInvoiceQueryResponse) Invoice {
	items := make([]InvoiceLine, len(result.Items))
	for i, item := range result.Items {
		items[i] = InvoiceLine{
			ID:          item.ID.String(),
			LineType:    item.LineType,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			CreatedAt:   item.CreatedAt,
		}
	}

	return Invoice{
		ID:            result.ID.String(),
		OrderID:       result.OrderID.String(),
		Status:        result.Status,
		DisputeReason: result.DisputeReason,
		Subtotal:      result.Subtotal,
		Items:         items,
	}
}

func toPendingApplications(results []queries.GetPendingApplicationsQueryResponse) []PendingApplication {
	applications := make([]PendingApplication, len(results))
	for i, result := range results {
		applications[i] = PendingApplication{
			ID:        result.ID.String(),
			LabID:     result.LabID.String(),
			AppliedAt: result.AppliedAt,
		}
	}
	return applications
}
