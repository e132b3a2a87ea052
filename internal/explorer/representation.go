package explorer

import (
	"context"
	"fmt"
	"log/slog"
)

// RepresentationHandler validates representation items and defers their
// deletion: it returns a RepresentationToDelete outcome for the session's
// outcome processor and mutates nothing itself.
type RepresentationHandler struct {
	logger *slog.Logger
}

// NewRepresentationHandler creates a RepresentationHandler.
func NewRepresentationHandler(logger *slog.Logger) *RepresentationHandler {
	return &RepresentationHandler{
		logger: logger.With("handler", "representation"),
	}
}

func (h *RepresentationHandler) Name() string { return "representation" }

func (h *RepresentationHandler) CanHandle(_ EditingContext, item TreeItem) bool {
	return IsRepresentationKind(item.Kind)
}

func (h *RepresentationHandler) Handle(_ context.Context, _ EditingContext, item TreeItem) Outcome {
	id, ok := ParseID(h.logger, item.ID)
	if !ok {
		return Failure(fmt.Errorf("%w: %q", ErrUnparseableIdentifier, item.ID))
	}

	return Success(RepresentationToDelete, map[string]any{
		ParamRepresentationID: id,
	})
}
