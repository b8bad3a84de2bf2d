package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the business error taxonomy.
// Use errors.Is against these to classify a wrapped error.
var (
	ErrValueIsRequired = errors.New("value is required")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrObjectNotFound  = errors.New("object not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrConflict        = errors.New("conflict")
	ErrGuardViolation  = errors.New("guard violation")
	ErrOperationFailed = errors.New("operation failed")
)

// ConflictReason identifies the specific race the caller lost.
type ConflictReason string

const (
	// ConflictAlreadyAssigned is returned when a competing application for the
	// same order was accepted first, or the order status already advanced.
	ConflictAlreadyAssigned ConflictReason = "AlreadyAssigned"

	// ConflictAlreadyRejected is returned when a lab re-applies to an order
	// after a prior application from the same lab was rejected.
	ConflictAlreadyRejected ConflictReason = "AlreadyRejected"
)

// GuardReason identifies the specific business precondition that is unmet.
type GuardReason string

const (
	// GuardQCIncomplete blocks the ReadyForQC -> ReadyForDelivery transition
	// while QC checklist items remain open.
	GuardQCIncomplete GuardReason = "QCIncomplete"

	// GuardInvoiceFrozen blocks invoice mutation while a raised dispute
	// is unresolved.
	GuardInvoiceFrozen GuardReason = "InvoiceFrozen"
)

// sanitize strips newlines so multi-line values cannot break log formats.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError indicates a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value is present but malformed or out of range.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates the referenced entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named entity.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), fmt.Sprintf("%s", e.ID), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, fmt.Sprintf("%s", e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// AuthorizationError indicates the actor lacks the ownership or role required
// for the attempted action. Never retried.
type AuthorizationError struct {
	ActorID string
	Action  string
}

// NewAuthorizationError creates an AuthorizationError for the given actor and action.
func NewAuthorizationError(actorID, action string) *AuthorizationError {
	return &AuthorizationError{ActorID: actorID, Action: action}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrNotAuthorized, sanitize(e.ActorID), sanitize(e.Action))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotAuthorized
}

// ConflictError indicates the caller lost a race against a competing mutation.
// It is a business outcome, not a retryable fault: the caller should refresh
// state and decide again.
type ConflictError struct {
	Reason  ConflictReason
	Details string
}

// NewConflictError creates a ConflictError with the given reason.
func NewConflictError(reason ConflictReason, details string) *ConflictError {
	return &ConflictError{Reason: reason, Details: details}
}

func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrConflict, e.Reason, sanitize(e.Details))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// GuardViolationError indicates a business precondition blocked a transition
// or mutation without corrupting state.
type GuardViolationError struct {
	Reason  GuardReason
	Details string
}

// NewGuardViolationError creates a GuardViolationError with the given reason.
func NewGuardViolationError(reason GuardReason, details string) *GuardViolationError {
	return &GuardViolationError{Reason: reason, Details: details}
}

func (e *GuardViolationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrGuardViolation, e.Reason, sanitize(e.Details))
	}
	return fmt.Sprintf("%s: %s", ErrGuardViolation, e.Reason)
}

func (e *GuardViolationError) Unwrap() error {
	return ErrGuardViolation
}

// OperationFailedError indicates an infrastructure failure or timeout.
// This is the only error category eligible for the bounded retry policy.
type OperationFailedError struct {
	Op    string
	Cause error
}

// NewOperationFailedError creates an OperationFailedError for the named operation.
func NewOperationFailedError(op string, cause error) *OperationFailedError {
	return &OperationFailedError{Op: op, Cause: cause}
}

func (e *OperationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrOperationFailed, sanitize(e.Op), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrOperationFailed, sanitize(e.Op))
}

func (e *OperationFailedError) Unwrap() error {
	return ErrOperationFailed
}
