// Package documents implements the document record domain.
// It provides types, data access, and business logic for persisted model
// documents whose content lives in blob storage.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is the persisted record of a model document.
// StorageKey is the opaque reference to the document content blob.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to store and register a new document.
// Content holds the serialized model graph.
type CreateCommand struct {
	Name        string
	ContentType string
	Content     []byte
}
