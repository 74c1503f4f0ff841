package services

import "errors"

var (
	// ErrOperatorNotFound means every identity lookup strategy was
	// exhausted. Callers must treat this as terminal for the current
	// screen and force re-authentication, never proceed with a partial
	// identity.
	ErrOperatorNotFound = errors.New("operator identity not found")

	// ErrBusNotFound means the bus does not exist or belongs to a
	// different operator.
	ErrBusNotFound = errors.New("bus not found")

	// ErrBookingNotFound means the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrIllegalTransition means the requested booking status change is
	// not permitted from the booking's current status.
	ErrIllegalTransition = errors.New("illegal booking status transition")

	// ErrConfirmationRequired means a cancellation was attempted without
	// explicit operator confirmation.
	ErrConfirmationRequired = errors.New("operator confirmation required")

	// ErrDriverNotFound means the driver does not exist or belongs to a
	// different operator.
	ErrDriverNotFound = errors.New("driver not found")
)
