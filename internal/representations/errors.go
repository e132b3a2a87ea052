package representations

import (
	"errors"
	"net/http"
)

// Domain errors for representation operations.
var (
	ErrNotFound    = errors.New("representation not found")
	ErrDuplicate   = errors.New("representation already exists")
	ErrInvalidKind = errors.New("invalid representation kind")
	ErrInvalidID   = errors.New("invalid representation id")
	ErrInvalidBody = errors.New("invalid request body")
)

// MapHTTPStatus maps representation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidKind) || errors.Is(err, ErrInvalidID) || errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
