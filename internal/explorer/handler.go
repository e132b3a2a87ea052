package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/pkg/auth"
	"github.com/JaimeStill/canopy/pkg/handlers"
	"github.com/JaimeStill/canopy/pkg/routes"
)

// Contexts resolves editing contexts. WithContext runs fn while holding the
// context's serialization point and returns ErrContextNotFound (wrapped) for
// unknown identifiers.
type Contexts interface {
	WithContext(ctx context.Context, id uuid.UUID, fn func(EditingContext) error) error
}

// Processor consumes dispatch outcomes on behalf of the editing context.
type Processor interface {
	Process(ctx context.Context, ec EditingContext, out Outcome) error
}

// Handler provides the HTTP endpoint for explorer deletion.
type Handler struct {
	dispatcher *Dispatcher
	contexts   Contexts
	processor  Processor
	logger     *slog.Logger
}

// NewHandler creates a Handler that dispatches within contexts and forwards
// outcomes to processor.
func NewHandler(
	dispatcher *Dispatcher,
	contexts Contexts,
	processor Processor,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		contexts:   contexts,
		processor:  processor,
		logger:     logger.With("handler", "explorer"),
	}
}

// Routes returns the route group definition for explorer endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/sessions/{id}/explorer",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/delete", Handler: h.Delete},
		},
	}
}

// Delete dispatches the TreeItem body within the session named by the path
// and responds with the resulting Outcome.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: session id", ErrInvalidRequest))
		return
	}

	var item TreeItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return
	}

	var (
		out        Outcome
		dispatched bool
	)
	err = h.contexts.WithContext(r.Context(), sessionID, func(ec EditingContext) error {
		out = h.dispatcher.Dispatch(r.Context(), ec, item)
		dispatched = true
		return h.processor.Process(r.Context(), ec, out)
	})
	if err != nil && !dispatched {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if err != nil {
		out = Failure(err)
	}

	attrs := []any{
		"session_id", sessionID,
		"kind", item.Kind,
		"success", out.Succeeded,
	}
	if subject, ok := auth.Subject(r.Context()); ok {
		attrs = append(attrs, "subject", subject)
	}
	h.logger.Info("explorer delete", attrs...)

	if !out.Succeeded {
		handlers.RespondJSON(w, MapHTTPStatus(out.Err()), out)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}
