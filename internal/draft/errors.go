package draft

import "errors"

var (
	// ErrInvalidTimeRange is returned when the start time is not strictly
	// before the end time
	ErrInvalidTimeRange = errors.New("draft: start time must be before end time")

	// ErrMissingEventType is returned when no event type was selected
	ErrMissingEventType = errors.New("draft: event type is required")

	// ErrInvalidState is returned when an operation is not valid in the
	// machine's current state
	ErrInvalidState = errors.New("draft: operation not allowed in current state")

	// ErrFinalized is returned for operations on a submitted or cancelled
	// draft
	ErrFinalized = errors.New("draft: draft already finalized")
)
