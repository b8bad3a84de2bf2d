// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides:
//   - UUID: a validated identifier wrapping github.com/google/uuid
//   - Money: a non-negative monetary amount over shopspring/decimal
//
// Value objects in this package are immutable and safe for concurrent use.
// Their zero values are invalid and must be created through the provided
// factory functions.
package kernel
