// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of aggregates affected by a
// business transaction and coordinates writing out changes atomically.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Deadline enforcement: a transaction that runs too long fails instead of blocking
//   - Aggregate tracking for post-commit processing such as change feed publishing
//   - Proper isolation between concurrent operations
//   - Repository factory pattern for consistent database connections
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db, 10*time.Second)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Multi-Repository Transactions:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	// All operations within same transaction
//	if err := uow.OrderRepository().Update(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Contended writes such as lab assignment additionally rely on
//     conditional updates at the repository level
package postgres

import (
	"context"
	"errors"
	"time"

	"dentallab/internal/adapters/out/postgres/applicationrepo"
	"dentallab/internal/adapters/out/postgres/auditrepo"
	"dentallab/internal/adapters/out/postgres/notificationrepo"
	"dentallab/internal/adapters/out/postgres/orderrepo"
	"dentallab/internal/adapters/out/postgres/pricingrepo"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/ports"
	"dentallab/internal/pkg/errs"

	"gorm.io/gorm"
)

// DefaultTxTimeout bounds a business transaction when the factory is not
// configured with an explicit timeout. A transaction that runs past its
// deadline fails with OperationFailedError instead of blocking.
const DefaultTxTimeout = 10 * time.Second

// trackedAggregate represents an aggregate modified during the unit of work.
// The tracked set feeds the change feed publisher after a successful commit.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	txTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all created
// instances. Every transaction begun through the factory carries txTimeout
// as its deadline; a non-positive value falls back to DefaultTxTimeout.
func NewGormUnitOfWorkFactory(db *gorm.DB, txTimeout time.Duration) *GormUnitOfWorkFactory {
	if txTimeout <= 0 {
		txTimeout = DefaultTxTimeout
	}
	return &GormUnitOfWorkFactory{db: db, txTimeout: txTimeout}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		txTimeout:         f.txTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	txCtx             context.Context
	txTimeout         time.Duration
	cancel            context.CancelFunc
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work. The
// transaction context carries the configured deadline, so every statement
// within it is cancelled once the deadline passes. Subsequent repository
// operations execute within this transaction context. Repeated calls on the
// same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	txCtx, cancel := context.WithTimeout(ctx, uow.timeout())

	tx := uow.db.WithContext(txCtx).Begin()
	if tx.Error != nil {
		cancel()
		return mapDeadline(tx.Error)
	}

	uow.tx = tx
	uow.txCtx = txCtx
	uow.cancel = cancel
	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused. A transaction
// that outlived its deadline fails with OperationFailedError: the driver has
// already discarded it, so its Commit error is the unhelpful ErrTxDone and
// the transaction context is consulted instead.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if ctxErr := uow.txCtx.Err(); ctxErr != nil {
		uow.close()
		return mapDeadline(ctxErr)
	}

	err := uow.tx.Commit().Error
	uow.close()
	return mapDeadline(err)
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if ctxErr := uow.txCtx.Err(); ctxErr != nil {
		uow.close()
		return mapDeadline(ctxErr)
	}

	err := uow.tx.Rollback().Error
	uow.close()
	return mapDeadline(err)
}

func (uow *GormUnitOfWork) timeout() time.Duration {
	if uow.txTimeout <= 0 {
		return DefaultTxTimeout
	}
	return uow.txTimeout
}

func (uow *GormUnitOfWork) close() {
	uow.tx = nil
	uow.txCtx = nil
	if uow.cancel != nil {
		uow.cancel()
		uow.cancel = nil
	}
}

// mapDeadline translates an expired transaction deadline into the business
// error taxonomy.
func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewOperationFailedError("transaction timed out", err)
	}
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
// Operations execute within the current transaction if one is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OrderHistoryRepository provides access to the status history trail within
// the unit of work.
func (uow *GormUnitOfWork) OrderHistoryRepository() ports.OrderHistoryRepository {
	return orderrepo.NewGormOrderHistoryRepository(uow.conn())
}

// ApplicationRepository provides access to marketplace application persistence
// within the unit of work.
func (uow *GormUnitOfWork) ApplicationRepository() ports.ApplicationRepository {
	return applicationrepo.NewGormApplicationRepository(uow.conn(), uow)
}

// PricingRuleRepository provides access to pricing rule persistence within the
// unit of work.
func (uow *GormUnitOfWork) PricingRuleRepository() ports.PricingRuleRepository {
	return pricingrepo.NewGormPricingRuleRepository(uow.conn())
}

// InvoiceRepository provides access to invoice persistence within the unit of
// work.
func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return pricingrepo.NewGormInvoiceRepository(uow.conn(), uow)
}

// AuditRepository provides access to the audit trail within the unit of work.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// NotificationRepository provides access to notification persistence within
// the unit of work.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call this when aggregates are added or
// updated; the tracked set is read after commit to publish change events.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
