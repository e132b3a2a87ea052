package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/pkg/pagination"
)

// Reader resolves a document and its model content. Sessions load their
// graphs through it.
type Reader interface {
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Content(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// System is the document catalog: model blobs in storage indexed by
// records in the documents table. Deletions are observable through
// decorators; explorer deletes and the HTTP surface share one System.
type System interface {
	Reader

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Create(ctx context.Context, cmd CreateCommand) (*Document, error)

	// Delete removes the record, then its content blob.
	// Returns ErrNotFound if no record exists.
	Delete(ctx context.Context, id uuid.UUID) error
}
