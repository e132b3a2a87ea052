// Package sessions provides editing sessions: live in-memory graph sets over
// persisted documents, the serialization point for explorer operations, and
// the processor that acts on explorer outcomes and notifies subscribers.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/internal/graph"
)

// OpenCommand carries the documents to load into a new session.
// A read-only session exposes no editable graph to the explorer.
type OpenCommand struct {
	DocumentIDs []uuid.UUID `json:"document_ids"`
	ReadOnly    bool        `json:"read_only"`
}

// Info describes an open session.
type Info struct {
	ID        uuid.UUID         `json:"id"`
	ReadOnly  bool              `json:"read_only"`
	OpenedAt  time.Time         `json:"opened_at"`
	Resources []*graph.Resource `json:"resources"`
}

// Session is an editable editing context.
type Session struct {
	id       uuid.UUID
	readOnly bool
	openedAt time.Time
	graph    *graph.Set
	events   *broadcaster

	// op serializes explorer operations against the session.
	op     sync.Mutex
	closed bool
}

func newSession(readOnly bool, resources []*graph.Resource, eventBuffer int) *Session {
	return &Session{
		id:       uuid.New(),
		readOnly: readOnly,
		openedAt: time.Now().UTC(),
		graph:    graph.NewSet(resources...),
		events:   newBroadcaster(eventBuffer),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) GraphEntries() []*graph.Resource {
	return s.graph.Resources()
}

func (s *Session) RemoveGraphEntries(match func(*graph.Resource) bool) []*graph.Resource {
	return s.graph.Remove(match)
}

func (s *Session) RestoreGraphEntries(entries []*graph.Resource) {
	s.graph.Add(entries...)
}

// Info returns a snapshot of the session. Resource content is omitted.
func (s *Session) Info() *Info {
	resources := s.graph.Resources()
	out := make([]*graph.Resource, len(resources))
	for i, r := range resources {
		c := *r
		c.Content = nil
		out[i] = &c
	}

	return &Info{
		ID:        s.id,
		ReadOnly:  s.readOnly,
		OpenedAt:  s.openedAt,
		Resources: out,
	}
}

func (s *Session) editingContext() explorer.EditingContext {
	if s.readOnly {
		return viewer{id: s.id}
	}
	return s
}

// viewer is the non-editable context of a read-only session.
type viewer struct {
	id uuid.UUID
}

func (v viewer) ID() uuid.UUID { return v.id }
