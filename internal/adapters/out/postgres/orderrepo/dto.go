// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status and assigned lab for the marketplace and sweep queries.
type OrderDTO struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DoctorID                    uuid.UUID `gorm:"type:uuid;index"`
	RestorationType             string
	Urgency                     int
	Status                      int        `gorm:"index"`
	AssignedLabID               *uuid.UUID `gorm:"type:uuid;index"`
	AutoAssignPending           bool
	DeliveryPendingConfirmation bool
	TargetBudget                *decimal.Decimal `gorm:"type:numeric"`
	AgreedFee                   *decimal.Decimal `gorm:"type:numeric"`
	CreatedAt                   time.Time
	StatusUpdatedAt             time.Time
	ActualDeliveryDate          *time.Time
	DeliveryConfirmedAt         *time.Time
	DeliveryConfirmedBy         *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO represents one row of the append-only status history trail.
type HistoryEntryDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	OldStatus int
	NewStatus int
	ChangedBy uuid.UUID `gorm:"type:uuid"`
	ChangedAt time.Time
	Notes     *string
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                          aggregate.ID().Bytes(),
		DoctorID:                    aggregate.DoctorID().Bytes(),
		RestorationType:             aggregate.RestorationType().String(),
		Urgency:                     int(aggregate.Urgency()),
		Status:                      int(aggregate.Status()),
		AssignedLabID:               uuidPtr(aggregate.AssignedLabID()),
		AutoAssignPending:           aggregate.AutoAssignPending(),
		DeliveryPendingConfirmation: aggregate.DeliveryPendingConfirmation(),
		CreatedAt:                   aggregate.CreatedAt(),
		StatusUpdatedAt:             aggregate.StatusUpdatedAt(),
		ActualDeliveryDate:          aggregate.ActualDeliveryDate(),
		DeliveryConfirmedAt:         aggregate.DeliveryConfirmedAt(),
		DeliveryConfirmedBy:         uuidPtr(aggregate.DeliveryConfirmedBy()),
	}

	if budget := aggregate.TargetBudget(); budget != nil {
		amount := budget.Amount()
		dto.TargetBudget = &amount
	}
	if fee := aggregate.AgreedFee(); fee != nil {
		amount := fee.Amount()
		dto.AgreedFee = &amount
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	doctorID, err := kernel.UUIDFromBytes(dto.DoctorID[:])
	if err != nil {
		return nil, err
	}

	assignedLabID, err := kernelUUIDPtr(dto.AssignedLabID)
	if err != nil {
		return nil, err
	}

	confirmedBy, err := kernelUUIDPtr(dto.DeliveryConfirmedBy)
	if err != nil {
		return nil, err
	}

	targetBudget, err := moneyPtr(dto.TargetBudget)
	if err != nil {
		return nil, err
	}

	agreedFee, err := moneyPtr(dto.AgreedFee)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.Status(dto.Status),
		doctorID,
		order.RestorationType(dto.RestorationType),
		order.Urgency(dto.Urgency),
		assignedLabID,
		dto.AutoAssignPending,
		dto.DeliveryPendingConfirmation,
		targetBudget,
		agreedFee,
		dto.CreatedAt,
		dto.StatusUpdatedAt,
		dto.ActualDeliveryDate,
		dto.DeliveryConfirmedAt,
		confirmedBy,
	)
}

func historyFromDomain(entry order.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		OrderID:   entry.OrderID().Bytes(),
		OldStatus: int(entry.OldStatus()),
		NewStatus: int(entry.NewStatus()),
		ChangedBy: entry.ChangedBy().Bytes(),
		ChangedAt: entry.ChangedAt(),
		Notes:     entry.Notes(),
	}
}

func historyToDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.RestoreHistoryEntry(
		orderID,
		order.Status(dto.OldStatus),
		order.Status(dto.NewStatus),
		changedBy,
		dto.ChangedAt,
		dto.Notes,
	), nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func moneyPtr(amount *decimal.Decimal) (*kernel.Money, error) {
	if amount == nil {
		return nil, nil
	}
	money, err := kernel.NewMoney(*amount)
	if err != nil {
		return nil, err
	}
	return &money, nil
}
