package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/documents"
)

type evictingDocuments struct {
	documents.System
	sessions System
}

// EvictOnDelete decorates docs so that every successful Delete evicts the
// document from the open sessions of sys. Both the documents HTTP surface and
// the explorer document handler should be given the decorated System.
func EvictOnDelete(docs documents.System, sys System) documents.System {
	return &evictingDocuments{System: docs, sessions: sys}
}

func (d *evictingDocuments) Delete(ctx context.Context, id uuid.UUID) error {
	if err := d.System.Delete(ctx, id); err != nil {
		return err
	}
	d.sessions.Evict(id)
	return nil
}
