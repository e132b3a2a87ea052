package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/internal/graph"
)

// DocumentStore is the persistence contract the document handler needs.
// Both methods return documents.ErrNotFound when no record exists.
type DocumentStore interface {
	Find(ctx context.Context, id uuid.UUID) (*documents.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentHandler deletes document items: it removes the document's graph
// entries from the session, then deletes the persisted record.
type DocumentHandler struct {
	store  DocumentStore
	logger *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler backed by store.
func NewDocumentHandler(store DocumentStore, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		store:  store,
		logger: logger.With("handler", "document"),
	}
}

func (h *DocumentHandler) Name() string { return "document" }

func (h *DocumentHandler) CanHandle(_ EditingContext, item TreeItem) bool {
	return IsDocumentKind(item.Kind)
}

// Handle removes every graph entry backed by the document and deletes the
// record. If the record delete fails the removed entries are restored and a
// Failure is returned, unless the record was already gone.
func (h *DocumentHandler) Handle(ctx context.Context, ec EditingContext, item TreeItem) Outcome {
	id, ok := ParseID(h.logger, item.ID)
	if !ok {
		return Failure(fmt.Errorf("%w: %q", ErrUnparseableIdentifier, item.ID))
	}

	session, ok := AsEditable(ec)
	if !ok {
		return Failure(ErrContextNotEditable)
	}

	doc, err := h.store.Find(ctx, id)
	if err != nil {
		return storeFailure(id, err)
	}

	uri := graph.URI(doc.ID)
	removed := session.RemoveGraphEntries(func(r *graph.Resource) bool {
		return r.URI == uri
	})

	if err := h.store.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			h.logger.Warn(
				"document deleted concurrently",
				"document_id", doc.ID,
				"session_id", session.ID(),
				"graph_entries", len(removed),
			)
			return storeFailure(id, err)
		}

		session.RestoreGraphEntries(removed)
		h.logger.Warn(
			"document delete failed, graph entries restored",
			"document_id", doc.ID,
			"session_id", session.ID(),
			"restored", len(removed),
			"error", err,
		)
		return storeFailure(id, err)
	}

	h.logger.Info(
		"document deleted",
		"document_id", doc.ID,
		"session_id", session.ID(),
		"graph_entries", len(removed),
	)
	return Success(SemanticChange, nil)
}

func storeFailure(id uuid.UUID, err error) Outcome {
	if errors.Is(err, documents.ErrNotFound) {
		return Failure(fmt.Errorf("%w: document %s", ErrRecordNotFound, id))
	}
	return Failure(fmt.Errorf("document store: %w", err))
}
