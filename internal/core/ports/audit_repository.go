package ports

import (
	"context"

	"dentallab/internal/core/domain/model/audit"
	"dentallab/internal/core/domain/model/kernel"
)

// AuditRepository defines the persistence contract for the append-only
// audit trail.
type AuditRepository interface {
	// Add appends an audit entry.
	Add(ctx context.Context, entry *audit.Entry) error

	// GetByEntity retrieves the audit trail for one entity ordered by
	// creation time.
	GetByEntity(ctx context.Context, entityType string, entityID kernel.UUID) ([]*audit.Entry, error)
}
