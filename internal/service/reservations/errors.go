package reservations

import "errors"

var (
	// ErrValidation is returned when a draft fails client-side validation;
	// the request never reaches the backend
	ErrValidation = errors.New("reservations: invalid reservation draft")

	// ErrConflict is returned when the backend rejects a create because
	// the slot is no longer available; the draft is preserved so the user
	// can pick another slot
	ErrConflict = errors.New("reservations: slot no longer available")

	// ErrNotFound is returned when the reservation or space does not exist
	ErrNotFound = errors.New("reservations: not found")

	// ErrTransport is returned on network failure or an unstructured
	// backend error
	ErrTransport = errors.New("reservations: backend unreachable")

	// ErrNoView is returned when an operation needs a loaded availability
	// view and none exists yet
	ErrNoView = errors.New("reservations: no availability view loaded")

	// ErrInternal is returned for internal service errors
	ErrInternal = errors.New("reservations: internal error")
)
