// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dental lab platform. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - MarketplaceMatcher: A domain service for matching marketplace orders with lab applications
//   - PricingEngine: A domain service deriving invoice line items from pricing rules
//   - RecipientResolver: A domain service computing notification recipient sets
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
