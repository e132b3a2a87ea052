package sessions_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/internal/representations"
	"github.com/JaimeStill/canopy/internal/sessions"
	"github.com/JaimeStill/canopy/pkg/pagination"
)

var discard = slog.New(slog.DiscardHandler)

var testPagination = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

type fakeDocs struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*documents.Document
}

func newFakeDocs(ids ...uuid.UUID) *fakeDocs {
	f := &fakeDocs{docs: make(map[uuid.UUID]*documents.Document)}
	for _, id := range ids {
		f.docs[id] = &documents.Document{ID: id, Name: id.String() + ".json"}
	}
	return f
}

func (f *fakeDocs) Find(_ context.Context, id uuid.UUID) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return d, nil
}

func (f *fakeDocs) Content(_ context.Context, id uuid.UUID) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return nil, documents.ErrNotFound
	}
	return []byte(`{"id":"` + id.String() + `"}`), nil
}

func (f *fakeDocs) List(context.Context, pagination.PageRequest, documents.Filters) (*pagination.PageResult[documents.Document], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDocs) Create(context.Context, documents.CreateCommand) (*documents.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDocs) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return documents.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeReps struct {
	mu      sync.Mutex
	owners  map[uuid.UUID]uuid.UUID
	deleted []uuid.UUID
}

func newFakeReps() *fakeReps {
	return &fakeReps{owners: make(map[uuid.UUID]uuid.UUID)}
}

// add registers a representation of the given document.
func (f *fakeReps) add(id, documentID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners[id] = documentID
}

func (f *fakeReps) Find(_ context.Context, id uuid.UUID) (*representations.Representation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.owners[id]
	if !ok {
		return nil, representations.ErrNotFound
	}
	return &representations.Representation{ID: id, DocumentID: doc, Kind: "Diagram"}, nil
}

func (f *fakeReps) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.owners[id]; !ok {
		return representations.ErrNotFound
	}
	delete(f.owners, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newSystem(t interface{ Fatalf(string, ...any) }, docs *fakeDocs, reps *fakeReps) sessions.System {
	cfg := &sessions.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize config: %v", err)
	}
	return sessions.New(docs, reps, cfg, discard, testPagination)
}
