// Package apperr defines the error taxonomy the engines and store speak.
// Handlers translate these to HTTP status codes in one place; store-level
// failures that don't match any sentinel surface as 500 without leaking
// driver details.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates an authenticated but unauthorized request.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a state-transition precondition was violated.
	ErrConflict = errors.New("conflict")
)

func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
