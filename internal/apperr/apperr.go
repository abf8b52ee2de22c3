// Package apperr holds the error kinds the service reports to clients.
// Callers wrap them with fmt.Errorf("...: %w", ...) and classify with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrValidation        = errors.New("invalid request")
	ErrInvalidTarget     = errors.New("invalid target status")
	ErrInvalidDecision   = errors.New("invalid approval decision")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrIllegalTransition = errors.New("illegal workflow transition")
)

// Status returns the HTTP status code for err. Errors outside the
// taxonomy are internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrInvalidDecision):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrIllegalTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Public reports whether err's message may be shown to a client.
func Public(err error) bool {
	return Status(err) != http.StatusInternalServerError
}
