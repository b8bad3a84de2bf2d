package applicationrepo

import (
	"context"
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/marketplace"
	"dentallab/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormApplicationRepository implements ApplicationRepository using GORM.
type GormApplicationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormApplicationRepository creates a new GORM application repository.
func NewGormApplicationRepository(db *gorm.DB, tracker aggregateTracker) *GormApplicationRepository {
	return &GormApplicationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new application to the database.
func (r *GormApplicationRepository) Add(ctx context.Context, aggregate *marketplace.Application) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing application to the database.
func (r *GormApplicationRepository) Update(ctx context.Context, aggregate *marketplace.Application) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ApplicationDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an application by ID.
func (r *GormApplicationRepository) Get(ctx context.Context, id kernel.UUID) (*marketplace.Application, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ApplicationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("application", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves all applications for an order regardless of status.
func (r *GormApplicationRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*marketplace.Application, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ApplicationDTO
	err := r.db.WithContext(ctx).
		Order("applied_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetPendingByLab retrieves a lab's still Pending applications.
func (r *GormApplicationRepository) GetPendingByLab(ctx context.Context, labID kernel.UUID) ([]*marketplace.Application, error) {
	if err := labID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ApplicationDTO
	err := r.db.WithContext(ctx).
		Order("applied_at").
		Find(&dtos, "lab_id = ? AND status = ?", labID.Bytes(), marketplace.ApplicationPending).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetRejectedOrderIDs retrieves the ids of orders the lab was rejected on.
func (r *GormApplicationRepository) GetRejectedOrderIDs(ctx context.Context, labID kernel.UUID) ([]kernel.UUID, error) {
	if err := labID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Model(&ApplicationDTO{}).
		Where("lab_id = ? AND status = ?", labID.Bytes(), marketplace.ApplicationRejected).
		Pluck("order_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, orderID)
	}

	return ids, nil
}

func toDomainSlice(dtos []ApplicationDTO) ([]*marketplace.Application, error) {
	applications := make([]*marketplace.Application, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, nil
}
