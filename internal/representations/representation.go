// Package representations implements persisted representation records:
// named views such as diagrams or forms over part of a document's content.
package representations

import (
	"time"

	"github.com/google/uuid"
)

// Representation is a persisted view over a document.
type Representation struct {
	ID             uuid.UUID `json:"id"`
	DocumentID     uuid.UUID `json:"document_id"`
	Kind           string    `json:"kind"`
	Label          string    `json:"label"`
	TargetObjectID string    `json:"target_object_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a representation.
type CreateCommand struct {
	DocumentID     uuid.UUID `json:"document_id"`
	Kind           string    `json:"kind"`
	Label          string    `json:"label"`
	TargetObjectID string    `json:"target_object_id"`
}
