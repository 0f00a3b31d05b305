// Package apperrors defines the error kinds shared across services and
// handlers. Errors are wrapped with %w so callers can branch with errors.Is.
package apperrors

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the request payload failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates a missing or insufficient credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict indicates the request conflicts with existing state.
	ErrConflict = errors.New("conflict")
)
