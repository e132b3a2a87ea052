package representations

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/pkg/query"
	"github.com/JaimeStill/canopy/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "representations", "r").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("kind", "Kind").
	Project("label", "Label").
	Project("target_object_id", "TargetObjectID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Label"}

// Filters contains optional filtering criteria for representation queries.
type Filters struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Kind       *string    `json:"kind,omitempty"`
	Label      *string    `json:"label,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("Kind", f.Kind).
		WhereContains("Label", f.Label)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unparseable document_id is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if k := values.Get("kind"); k != "" {
		f.Kind = &k
	}

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	return f
}

func scanRepresentation(s repository.Scanner) (Representation, error) {
	var r Representation
	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.Kind,
		&r.Label,
		&r.TargetObjectID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
