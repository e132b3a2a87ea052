package sessions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/canopy/internal/explorer"
)

// Domain errors for session operations.
var (
	ErrNotFound         = fmt.Errorf("session: %w", explorer.ErrContextNotFound)
	ErrInvalidCommand   = errors.New("invalid open command")
	ErrTooManyDocuments = errors.New("too many documents for one session")
	ErrDocumentNotFound = errors.New("session document not found")
	ErrInvalidOutcome   = errors.New("invalid outcome")
	ErrClosed           = errors.New("session manager closed")

	// ErrRepresentationOutsideSession reports a representation whose document
	// is not loaded in the session; it reads as not found to callers.
	ErrRepresentationOutsideSession = fmt.Errorf("representation outside session: %w", explorer.ErrRecordNotFound)
)

// MapHTTPStatus maps session domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCommand), errors.Is(err, ErrTooManyDocuments):
		return http.StatusBadRequest
	case errors.Is(err, ErrDocumentNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
