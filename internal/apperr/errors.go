package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrOrderNotFound and ErrDriverNotFound refine ErrNotFound.
var (
	ErrOrderNotFound  = fmt.Errorf("order %w", ErrNotFound)
	ErrDriverNotFound = fmt.Errorf("driver %w", ErrNotFound)
)

// ErrNotAssignable is matched by every *NotAssignableError.
var ErrNotAssignable = errors.New("driver not assignable")

// ErrNoActiveAssignment is returned when an order holds no driver.
var ErrNoActiveAssignment = errors.New("no active assignment")

// ErrInvalidTransition is returned for a move the order state machine forbids.
var ErrInvalidTransition = errors.New("invalid status transition")

// RejectCode classifies why a driver cannot take an order.
type RejectCode string

// Rejection codes, in evaluation precedence.
const (
	RejectUnavailable  RejectCode = "driver_unavailable"
	RejectZoneMismatch RejectCode = "zone_mismatch"
	RejectTimeConflict RejectCode = "time_conflict"
)

// NotAssignableError carries the single most relevant blocking reason.
type NotAssignableError struct {
	Code            RejectCode
	Reason          string
	ConflictOrderID string
}

func (e *NotAssignableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotAssignable.Error(), e.Reason)
}

// Is makes errors.Is(err, ErrNotAssignable) hold.
func (e *NotAssignableError) Is(target error) bool {
	return target == ErrNotAssignable
}

// InvalidTransition wraps ErrInvalidTransition with the offending states.
func InvalidTransition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
