package booking

import "fmt"

// ValidationError rejects malformed or out-of-policy input. Message names
// the offending field or rule and is safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// NotFoundError reports a missing referenced entity, distinct per entity.
type NotFoundError struct {
	Entity string // "customer", "worker", "service", "booking"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ConflictError reports that the requested slot is already taken. The
// transaction was aborted; nothing was written.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StateError rejects an operation not allowed in the booking's current state,
// such as rescheduling a terminal booking or an illegal transition.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// TransientCommitError means the transaction coordinator could not complete
// the atomic unit. The whole request may be retried by the caller; it is
// never retried server-side. Distinct from ConflictError so callers can tell
// "try again" apart from "the slot is taken".
type TransientCommitError struct {
	Cause error
}

func (e *TransientCommitError) Error() string {
	return fmt.Sprintf("booking could not complete: %v", e.Cause)
}

func (e *TransientCommitError) Unwrap() error {
	return e.Cause
}
