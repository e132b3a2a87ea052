package sessions

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/graph"
)

// Filters narrows a session listing. Nil fields match everything.
type Filters struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	ReadOnly   *bool      `json:"read_only,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if ro := values.Get("read_only"); ro != "" {
		if b, err := strconv.ParseBool(ro); err == nil {
			f.ReadOnly = &b
		}
	}

	return f
}

func (f Filters) match(s *Session) bool {
	if f.ReadOnly != nil && s.readOnly != *f.ReadOnly {
		return false
	}
	if f.DocumentID != nil {
		uri := graph.URI(*f.DocumentID)
		for _, r := range s.graph.Resources() {
			if r.URI == uri {
				return true
			}
		}
		return false
	}
	return true
}
