// Package status defines the error taxonomy surfaced at the request
// boundary. Services wrap these sentinels with context via fmt.Errorf
// and %w; handlers map them to HTTP statuses.
package status

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrOutOfStock   = errors.New("insufficient tickets remaining")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("operation not permitted")
	ErrConflict     = errors.New("conflicting state")
)
