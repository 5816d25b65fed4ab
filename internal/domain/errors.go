package domain

import (
	"errors"
	"fmt"
)

// Expected business outcomes and defects, distinguished from transient
// storage faults which are returned wrapped as-is by the repositories.
var (
	// ErrInsufficientSeats means the conditional seat decrement matched no
	// row: the flight is full, inactive or missing. A normal outcome of
	// racing reservations, not an anomaly.
	ErrInsufficientSeats = errors.New("not enough available seats")

	// ErrNotFound covers a booking that does not exist or is not owned by
	// the requesting user.
	ErrNotFound = errors.New("booking not found")

	// ErrDuplicateReference is the store's unique-index verdict on a
	// generated booking reference. The ledger retries with a fresh one.
	ErrDuplicateReference = errors.New("booking reference already exists")

	// ErrInvalidTransition rejects a status change the machine forbids,
	// e.g. confirming a cancelled booking.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrIntegrityViolation means a committed invariant would break, e.g.
	// a seat credit pushing available_seats above total capacity. Always a
	// defect, never silently corrected.
	ErrIntegrityViolation = errors.New("seat inventory integrity violation")
)

// ValidationError marks malformed or missing caller input. No state is
// changed when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a caller-input problem.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
