// Package errs provides standardized error types for the dental-lab platform.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the core business taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input,
//     never retried, surfaced verbatim
//   - AuthorizationError: actor lacks ownership or role, never retried
//   - ConflictError: the caller lost a race (e.g. AlreadyAssigned), surfaced
//     to prompt a state refresh, never silently retried
//   - GuardViolationError: a business precondition is unmet (e.g. QCIncomplete,
//     InvoiceFrozen), surfaced with the specific reason
//   - ObjectNotFoundError: the referenced entity does not exist
//   - OperationFailedError: infrastructure or timeout failure, the only
//     category eligible for retry
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach enables error classification at the HTTP boundary
// and in the retry policy without string matching.
package errs
