package pricingrepo

import (
	"context"
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/pricing"
	"dentallab/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPricingRuleRepository implements PricingRuleRepository using GORM.
type GormPricingRuleRepository struct {
	db *gorm.DB
}

// NewGormPricingRuleRepository creates a new GORM pricing rule repository.
func NewGormPricingRuleRepository(db *gorm.DB) *GormPricingRuleRepository {
	return &GormPricingRuleRepository{db: db}
}

// Upsert inserts the rule or replaces an existing rule with the same id.
func (r *GormPricingRuleRepository) Upsert(ctx context.Context, rule *pricing.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := ruleFromDomain(rule)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

// Get retrieves a rule by ID.
func (r *GormPricingRuleRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.Rule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RuleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricingRule", id.String())
		}
		return nil, err
	}

	return ruleToDomain(dto)
}

// GetAll retrieves every rule, active and inactive.
func (r *GormPricingRuleRepository) GetAll(ctx context.Context) ([]*pricing.Rule, error) {
	var dtos []RuleDTO
	if err := r.db.WithContext(ctx).Order("priority").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return rulesToDomain(dtos)
}

// GetActive retrieves all active rules for engine evaluation.
func (r *GormPricingRuleRepository) GetActive(ctx context.Context) ([]*pricing.Rule, error) {
	var dtos []RuleDTO
	err := r.db.WithContext(ctx).Order("priority").Find(&dtos, "is_active = ?", true).Error
	if err != nil {
		return nil, err
	}

	return rulesToDomain(dtos)
}

// Delete removes a rule by id.
func (r *GormPricingRuleRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RuleDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pricingRule", id.String())
	}

	return nil
}

func rulesToDomain(dtos []RuleDTO) ([]*pricing.Rule, error) {
	rules := make([]*pricing.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := ruleToDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invoice and its line items to the database.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *pricing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, itemDTOs := invoiceFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.saveItems(ctx, itemDTOs); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing invoice to the database. Line items are append
// only: new items are inserted, existing items are left untouched so the
// original charge timestamps survive re-evaluation.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *pricing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, itemDTOs := invoiceFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.saveItems(ctx, itemDTOs); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an invoice with its line items by ID.
func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByOrder retrieves the invoice belonging to an order.
func (r *GormInvoiceRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*pricing.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", orderID.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

func (r *GormInvoiceRepository) saveItems(ctx context.Context, itemDTOs []LineItemDTO) error {
	if len(itemDTOs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&itemDTOs).Error
}

func (r *GormInvoiceRepository) load(ctx context.Context, dto InvoiceDTO) (*pricing.Invoice, error) {
	var itemDTOs []LineItemDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&itemDTOs, "invoice_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return invoiceToDomain(dto, itemDTOs)
}
