// Package graph holds the in-memory model graphs loaded into an editing session.
// A Set is the session's working collection of resources, one per open document,
// keyed by the URI derived from the backing document identifier.
package graph

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Resource is a loaded document graph.
type Resource struct {
	URI        string          `json:"uri"`
	DocumentID uuid.UUID       `json:"document_id"`
	Name       string          `json:"name"`
	Content    json.RawMessage `json:"content,omitempty"`
	LoadedAt   time.Time       `json:"loaded_at"`
}

// URI returns the resource URI for a document identifier.
func URI(id uuid.UUID) string {
	return id.String()
}

// NewResource builds a resource backed by the given document.
func NewResource(documentID uuid.UUID, name string, content []byte) *Resource {
	return &Resource{
		URI:        URI(documentID),
		DocumentID: documentID,
		Name:       name,
		Content:    json.RawMessage(content),
		LoadedAt:   time.Now().UTC(),
	}
}

// Set is a mutex-guarded collection of resources.
// Duplicate URIs are permitted; Remove drops every match.
type Set struct {
	mu        sync.RWMutex
	resources []*Resource
}

// NewSet creates a Set containing the given resources.
func NewSet(resources ...*Resource) *Set {
	s := &Set{}
	s.Add(resources...)
	return s
}

// Resources returns a snapshot of the set in insertion order.
func (s *Set) Resources() []*Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.resources)
}

// Add appends resources to the set. Nil entries are ignored.
func (s *Set) Add(resources ...*Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range resources {
		if r != nil {
			s.resources = append(s.resources, r)
		}
	}
}

// Remove drops every resource for which match returns true and returns them.
func (s *Set) Remove(match func(*Resource) bool) []*Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*Resource
	s.resources = slices.DeleteFunc(s.resources, func(r *Resource) bool {
		if match(r) {
			removed = append(removed, r)
			return true
		}
		return false
	})
	return removed
}

// Find returns the first resource with the given URI.
func (s *Set) Find(uri string) (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.resources {
		if r.URI == uri {
			return r, true
		}
	}
	return nil, false
}

// Len returns the number of resources in the set.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}
