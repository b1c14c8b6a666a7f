package condoapi

import "errors"

var (
	// ErrConflict is returned when the backend rejects a create because
	// the slot is no longer available
	ErrConflict = errors.New("condoapi client: slot conflict")

	// ErrNotFound is returned when the requested resource does not exist
	ErrNotFound = errors.New("condoapi client: not found")

	// ErrValidation is returned when the backend rejects the request as
	// malformed or invalid
	ErrValidation = errors.New("condoapi client: validation rejected")

	// ErrTransport is returned on network failure or a non-2xx response
	// without a structured detail body
	ErrTransport = errors.New("condoapi client: transport error")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded
	ErrInvalidResponse = errors.New("condoapi client: invalid response")

	// ErrInternal is returned for internal client errors
	ErrInternal = errors.New("condoapi client: internal error")
)
