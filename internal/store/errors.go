package store

import "errors"

var (
	// ErrCancelled is returned when the user declines a confirmation prompt.
	// No request is sent and no snapshot is touched.
	ErrCancelled = errors.New("cancelled by user")

	// ErrToggleInFlight is returned when a like toggle is invoked for an
	// entity that already has an unresolved toggle outstanding.
	ErrToggleInFlight = errors.New("like toggle already in flight for this id")
)
