package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDonationNotFound is returned when a mutation targets an
	// unknown donation id.
	ErrDonationNotFound = errors.New("donation not found")

	// ErrInvalidTransition is returned when the requested status is not
	// the immediate successor of the donation's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError describes a rejected donation payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
