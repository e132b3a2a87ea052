package explorer

import (
	"errors"
	"net/http"
)

// Failure causes reported by deletion handlers and the dispatcher.
var (
	ErrUnparseableIdentifier = errors.New("unparseable tree item identifier")
	ErrRecordNotFound        = errors.New("record not found")
	ErrContextNotEditable    = errors.New("editing context is not editable")
	ErrContextNotFound       = errors.New("editing context not found")
	ErrUnsupportedItem       = errors.New("unsupported tree item")
	ErrInvalidRequest        = errors.New("invalid request")
)

// MapHTTPStatus maps explorer errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnparseableIdentifier), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrContextNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrContextNotEditable):
		return http.StatusConflict
	case errors.Is(err, ErrUnsupportedItem):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
