package explorer_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/internal/graph"
)

type plainContext struct {
	id uuid.UUID
}

func (c plainContext) ID() uuid.UUID { return c.id }

type fakeSession struct {
	id  uuid.UUID
	set *graph.Set
}

func newFakeSession(resources ...*graph.Resource) *fakeSession {
	return &fakeSession{id: uuid.New(), set: graph.NewSet(resources...)}
}

func (s *fakeSession) ID() uuid.UUID { return s.id }

func (s *fakeSession) GraphEntries() []*graph.Resource { return s.set.Resources() }

func (s *fakeSession) RemoveGraphEntries(match func(*graph.Resource) bool) []*graph.Resource {
	return s.set.Remove(match)
}

func (s *fakeSession) RestoreGraphEntries(entries []*graph.Resource) {
	s.set.Add(entries...)
}

type fakeStore struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*documents.Document
	deleteErr error
	deletes   int
}

func newFakeStore(ids ...uuid.UUID) *fakeStore {
	s := &fakeStore{docs: make(map[uuid.UUID]*documents.Document)}
	for _, id := range ids {
		s.docs[id] = &documents.Document{ID: id, Name: id.String() + ".json"}
	}
	return s
}

func (s *fakeStore) Find(_ context.Context, id uuid.UUID) (*documents.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return d, nil
}

func (s *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.docs[id]; !ok {
		return documents.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

type stubHandler struct {
	name    string
	claims  func(explorer.TreeItem) bool
	outcome explorer.Outcome
	calls   int
}

func (h *stubHandler) Name() string { return h.name }

func (h *stubHandler) CanHandle(_ explorer.EditingContext, item explorer.TreeItem) bool {
	return h.claims(item)
}

func (h *stubHandler) Handle(context.Context, explorer.EditingContext, explorer.TreeItem) explorer.Outcome {
	h.calls++
	return h.outcome
}
