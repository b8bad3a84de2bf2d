// Package order contains the work order aggregate and its lifecycle state
// machine.
//
// A work order moves through:
//
//	Pending ──> InProgress ──> ReadyForQC ──> ReadyForDelivery ──> Delivered
//	   │            │              │                │
//	   └────────────┴──────────────┴────────────────┴──> Cancelled
//
// Cancelled is reachable from any non-terminal state. Delivered carries a
// deliveryPendingConfirmation sub-flag: a lab marking the order delivered sets
// the flag, and the doctor later either confirms delivery (clearing it and
// stamping confirmation metadata) or reports an issue, which performs no state
// transition at all.
//
// The ReadyForQC -> ReadyForDelivery transition is guarded: it requires an
// external signal that every QC checklist item is complete. The aggregate only
// consumes the boolean; the checklist itself lives outside this core.
//
// Every accepted transition produces an append-only HistoryEntry and refreshes
// the status timestamp. An order is marketplace-visible exactly when it awaits
// auto-assignment and no lab is assigned yet.
package order
