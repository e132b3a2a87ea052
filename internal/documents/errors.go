package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("document already exists")
	ErrContentTooLarge = errors.New("content exceeds maximum upload size")
	ErrInvalidContent  = errors.New("invalid document content")
	ErrInvalidID       = errors.New("invalid document id")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrContentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidContent), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
