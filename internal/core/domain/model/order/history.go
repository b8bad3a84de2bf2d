package order

import (
	"time"

	"dentallab/internal/core/domain/model/kernel"
)

// HistoryEntry is an append-only record of one accepted status transition.
// Entries are produced by the aggregate itself so that a transition and its
// history row can never disagree.
type HistoryEntry struct {
	orderID   kernel.UUID
	oldStatus Status
	newStatus Status
	changedBy kernel.UUID
	changedAt time.Time
	notes     *string
}

// newHistoryEntry records a transition. Only the aggregate creates entries.
func newHistoryEntry(orderID kernel.UUID, oldStatus, newStatus Status, changedBy kernel.UUID, changedAt time.Time, notes *string) HistoryEntry {
	return HistoryEntry{
		orderID:   orderID,
		oldStatus: oldStatus,
		newStatus: newStatus,
		changedBy: changedBy,
		changedAt: changedAt,
		notes:     notes,
	}
}

// RestoreHistoryEntry reconstructs an entry from persistence.
func RestoreHistoryEntry(orderID kernel.UUID, oldStatus, newStatus Status, changedBy kernel.UUID, changedAt time.Time, notes *string) HistoryEntry {
	return newHistoryEntry(orderID, oldStatus, newStatus, changedBy, changedAt, notes)
}

// OrderID returns the order the transition belongs to.
func (h HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// OldStatus returns the status before the transition.
func (h HistoryEntry) OldStatus() Status {
	return h.oldStatus
}

// NewStatus returns the status after the transition.
func (h HistoryEntry) NewStatus() Status {
	return h.newStatus
}

// ChangedBy returns the actor that requested the transition.
func (h HistoryEntry) ChangedBy() kernel.UUID {
	return h.changedBy
}

// ChangedAt returns when the transition was accepted.
func (h HistoryEntry) ChangedAt() time.Time {
	return h.changedAt
}

// Notes returns the optional free-text note attached to the transition.
func (h HistoryEntry) Notes() *string {
	return h.notes
}
