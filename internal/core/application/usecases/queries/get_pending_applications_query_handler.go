package queries

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingApplicationsQueryHandler lists the open applications on an order,
// oldest first. Terminal applications are excluded.
type GetPendingApplicationsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingApplicationsQueryHandler creates a handler for pending application queries.
func NewGetPendingApplicationsQueryHandler(db *gorm.DB) GetPendingApplicationsQueryHandler {
	return GetPendingApplicationsQueryHandler{db: db}
}

// Handle executes the pending application query.
func (h GetPendingApplicationsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingApplicationsQuery,
) ([]GetPendingApplicationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	applications := make([]GetPendingApplicationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lab_id,
			applied_at
		FROM applications
		WHERE order_id = ? AND status = ?
		ORDER BY applied_at
	`, query.OrderID().Bytes(), marketplace.ApplicationPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingApplicationsQueryResponse
		var id, labID uuid.UUID

		err = rows.Scan(&id, &labID, &resp.AppliedAt)
		if err != nil {
			return nil, err
		}

		appID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = appID

		lab, idErr := kernel.UUIDFromBytes(labID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.LabID = lab
		applications = append(applications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}
