package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/internal/representations"
	"github.com/JaimeStill/canopy/pkg/lifecycle"
	"github.com/JaimeStill/canopy/pkg/pagination"
)

// RepresentationStore resolves and deletes representations on behalf of the
// outcome processor.
type RepresentationStore interface {
	Find(ctx context.Context, id uuid.UUID) (*representations.Representation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// System defines the public contract for editing sessions.
// It satisfies explorer.Contexts and explorer.Processor.
type System interface {
	Handler() *Handler

	// List pages the open sessions matching filters, oldest first.
	List(page pagination.PageRequest, filters Filters) pagination.PageResult[Info]

	Open(ctx context.Context, cmd OpenCommand) (*Info, error)
	Find(id uuid.UUID) (*Info, error)
	Close(id uuid.UUID) error

	// WithContext runs fn against the session's editing context while holding
	// the session's operation lock.
	WithContext(ctx context.Context, id uuid.UUID, fn func(explorer.EditingContext) error) error

	// Process applies a dispatch outcome and publishes it to subscribers.
	// Failed outcomes are ignored. Representation deletes require an editable
	// context whose graph holds the representation's document.
	Process(ctx context.Context, ec explorer.EditingContext, out explorer.Outcome) error

	// Evict drops a deleted document from every open session and notifies
	// the affected sessions. It returns the number of sessions changed.
	// Session operation locks are not taken, so it is safe to call from
	// within WithContext.
	Evict(documentID uuid.UUID) int

	// Subscribe returns the session's event stream and a cancel func.
	Subscribe(id uuid.UUID) (<-chan Event, func(), error)

	// Start registers a shutdown hook that closes every session.
	Start(lc *lifecycle.Coordinator) error
}
