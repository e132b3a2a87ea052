package representations

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/pkg/pagination"
)

// System defines the public contract for representation domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Representation], error)

	Find(ctx context.Context, id uuid.UUID) (*Representation, error)
	Create(ctx context.Context, cmd CreateCommand) (*Representation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
