// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management and persistence.
package commands

import (
	"context"

	"dentallab/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the status history repository within a transaction.
	HistoryRepoFactory interface {
		OrderHistoryRepository() ports.OrderHistoryRepository
	}

	// ApplicationRepoFactory provides access to the application repository within a transaction.
	ApplicationRepoFactory interface {
		ApplicationRepository() ports.ApplicationRepository
	}

	// PricingRuleRepoFactory provides access to the pricing rule repository within a transaction.
	PricingRuleRepoFactory interface {
		PricingRuleRepository() ports.PricingRuleRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order lifecycle operations. Billing
	// and notification effects of a transition commit atomically with it.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		PricingRuleRepoFactory
		InvoiceRepoFactory
		NotificationRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// MarketplaceUoW manages transactions spanning orders and applications.
	// Acceptance additionally touches the invoice, so billing repositories
	// are part of the same boundary.
	MarketplaceUoW interface {
		TxManager
		OrderRepoFactory
		ApplicationRepoFactory
		PricingRuleRepoFactory
		InvoiceRepoFactory
		NotificationRepoFactory
	}

	// MarketplaceUoWFactory creates new marketplace unit of work instances.
	MarketplaceUoWFactory interface {
		Create() MarketplaceUoW
	}

	// BillingUoW manages transactions for pricing rule and invoice
	// administration. Every privileged mutation in this boundary writes an
	// audit entry in the same transaction.
	BillingUoW interface {
		TxManager
		OrderRepoFactory
		PricingRuleRepoFactory
		InvoiceRepoFactory
		AuditRepoFactory
		NotificationRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}
)
