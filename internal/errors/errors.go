package errors

import "errors"

// Authorization failures.
var (
	ErrNotAuthenticated = errors.New("user is not authenticated")
	ErrForbidden        = errors.New("operation requires staff privileges")
)

// Identity failures.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Lookup failures. Repositories return these instead of sql.ErrNoRows
// so callers never depend on the store.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrVenueNotFound   = errors.New("venue not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// Domain rule violations.
var (
	ErrAlreadyBooked       = errors.New("event already booked by user")
	ErrValidationFailed    = errors.New("validation failed")
	ErrConstraintViolation = errors.New("unique constraint violated")
)
