// Package pricingrepo provides data transfer objects and mapping functions for
// pricing rule and invoice persistence. Invoices load together with their line
// items; line items are append-only and written alongside the invoice row.
package pricingrepo

import (
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleDTO represents the database structure for persisting pricing rules.
type RuleDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RuleType        int
	RestorationType *string
	Urgency         *int
	Amount          decimal.Decimal `gorm:"type:numeric"`
	IsPercentage    bool
	Priority        int
	IsActive        bool `gorm:"index"`
}

// TableName specifies the database table name for pricing rules.
func (RuleDTO) TableName() string {
	return "pricing_rules"
}

// InvoiceDTO represents the database structure for persisting invoices.
type InvoiceDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Status        int
	DisputeReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// LineItemDTO represents one persisted invoice line. Line ids are derived
// deterministically from the source event and rule, so re-evaluations collide
// on the primary key instead of duplicating charges.
type LineItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;index"`
	LineType    string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric"`
	SourceEvent int
	RuleApplied *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for invoice line items.
func (LineItemDTO) TableName() string {
	return "invoice_line_items"
}

func ruleFromDomain(rule *pricing.Rule) RuleDTO {
	dto := RuleDTO{
		ID:           rule.ID().Bytes(),
		RuleType:     int(rule.Type()),
		Amount:       rule.Amount(),
		IsPercentage: rule.IsPercentage(),
		Priority:     rule.Priority(),
		IsActive:     rule.IsActive(),
	}

	if rt := rule.RestorationType(); rt != nil {
		s := rt.String()
		dto.RestorationType = &s
	}
	if u := rule.Urgency(); u != nil {
		v := int(*u)
		dto.Urgency = &v
	}

	return dto
}

func ruleToDomain(dto RuleDTO) (*pricing.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var restorationType *order.RestorationType
	if dto.RestorationType != nil {
		rt := order.RestorationType(*dto.RestorationType)
		restorationType = &rt
	}

	var urgency *order.Urgency
	if dto.Urgency != nil {
		u := order.Urgency(*dto.Urgency)
		urgency = &u
	}

	return pricing.RestoreRule(
		id,
		pricing.RuleType(dto.RuleType),
		restorationType,
		urgency,
		dto.Amount,
		dto.IsPercentage,
		dto.Priority,
		dto.IsActive,
	)
}

func invoiceFromDomain(aggregate *pricing.Invoice) (InvoiceDTO, []LineItemDTO) {
	dto := InvoiceDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		Status:        int(aggregate.Status()),
		DisputeReason: aggregate.DisputeReason(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}

	items := aggregate.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, lineItemFromDomain(item))
	}

	return dto, itemDTOs
}

func lineItemFromDomain(item pricing.LineItem) LineItemDTO {
	var ruleApplied *uuid.UUID
	if rule := item.RuleApplied(); rule != nil {
		raw := rule.Bytes()
		ruleApplied = &raw
	}

	return LineItemDTO{
		ID:          item.ID().Bytes(),
		InvoiceID:   item.InvoiceID().Bytes(),
		LineType:    item.LineType(),
		Description: item.Description(),
		Quantity:    item.Quantity(),
		UnitPrice:   item.UnitPrice(),
		TotalPrice:  item.TotalPrice(),
		SourceEvent: int(item.SourceEvent()),
		RuleApplied: ruleApplied,
		CreatedAt:   item.CreatedAt(),
	}
}

func invoiceToDomain(dto InvoiceDTO, itemDTOs []LineItemDTO) (*pricing.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	items := make([]pricing.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return pricing.RestoreInvoice(
		id,
		orderID,
		pricing.InvoiceStatus(dto.Status),
		dto.DisputeReason,
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func lineItemToDomain(dto LineItemDTO) (pricing.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return pricing.LineItem{}, err
	}

	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return pricing.LineItem{}, err
	}

	var ruleApplied *kernel.UUID
	if dto.RuleApplied != nil {
		rule, ruleErr := kernel.UUIDFromBytes((*dto.RuleApplied)[:])
		if ruleErr != nil {
			return pricing.LineItem{}, ruleErr
		}
		ruleApplied = &rule
	}

	return pricing.RestoreLineItem(
		id,
		invoiceID,
		dto.LineType,
		dto.Description,
		dto.Quantity,
		dto.UnitPrice,
		dto.TotalPrice,
		pricing.SourceEvent(dto.SourceEvent),
		ruleApplied,
		dto.CreatedAt,
	)
}
