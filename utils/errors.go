package utils

import "errors"

// Error kinds shared across repository, usecase and handler layers.
// Handlers translate these to HTTP statuses; nothing else leaks out.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrUpstreamUnavailable marks a store backend failure. Cache backend
	// failures are never wrapped in this - the cache degrades to a miss.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ValidationError is a caller mistake: missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
