package apperr

import (
	"errors"
	"net/http"
)

// Business-rule errors surfaced to callers. Anything not wrapping one of
// these is treated as an internal error and never shown verbatim.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBelowMinimumOrder = errors.New("below minimum order quantity")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrBelowMinimumOrder),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
