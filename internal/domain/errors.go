package domain

import "errors"

// Sentinel errors shared across the module. Services wrap them with context
// via fmt.Errorf and %w; callers branch with errors.Is.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request carries unusable data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEventFull is returned by Event.AddGuest when the guest list has
	// reached the event's capacity. The guest list is left unchanged.
	ErrEventFull = errors.New("event is full")

	// ErrInvalidEventDate is reserved for event date validation. Dates are
	// currently free text and no code path returns it.
	ErrInvalidEventDate = errors.New("invalid event date")

	// ErrUnauthorized is returned when credentials are missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
)
