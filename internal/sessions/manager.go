package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/internal/graph"
	"github.com/JaimeStill/canopy/internal/representations"
	"github.com/JaimeStill/canopy/pkg/lifecycle"
	"github.com/JaimeStill/canopy/pkg/pagination"
)

type manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	closed   bool

	docs       documents.Reader
	reps       RepresentationStore
	cfg        Config
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a session manager implementing the System interface.
func New(
	docs documents.Reader,
	reps RepresentationStore,
	cfg *Config,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &manager{
		sessions:   make(map[uuid.UUID]*Session),
		docs:       docs,
		reps:       reps,
		cfg:        *cfg,
		logger:     logger.With("system", "sessions"),
		pagination: pagination,
	}
}

func (m *manager) Handler() *Handler {
	return NewHandler(m, m.logger, m.pagination)
}

func (m *manager) List(page pagination.PageRequest, filters Filters) pagination.PageResult[Info] {
	page.Normalize(m.pagination)

	m.mu.RLock()
	open := slices.Collect(maps.Values(m.sessions))
	m.mu.RUnlock()

	open = slices.DeleteFunc(open, func(s *Session) bool { return !filters.match(s) })
	slices.SortFunc(open, func(a, b *Session) int {
		if c := a.openedAt.Compare(b.openedAt); c != 0 {
			return c
		}
		return strings.Compare(a.id.String(), b.id.String())
	})

	infos := make([]Info, len(open))
	for i, s := range open {
		infos[i] = *s.Info()
	}
	return pagination.Paginate(infos, page)
}

func (m *manager) Open(ctx context.Context, cmd OpenCommand) (*Info, error) {
	ids, err := m.validate(cmd)
	if err != nil {
		return nil, err
	}

	resources, err := m.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	s := newSession(cmd.ReadOnly, resources, m.cfg.EventBuffer)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info(
		"session opened",
		"session_id", s.id,
		"documents", len(resources),
		"read_only", cmd.ReadOnly,
	)
	return s.Info(), nil
}

func (m *manager) Find(id uuid.UUID) (*Info, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}
	return s.Info(), nil
}

func (m *manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	s.op.Lock()
	s.closed = true
	s.op.Unlock()
	s.events.close()

	m.logger.Info("session closed", "session_id", id)
	return nil
}

func (m *manager) WithContext(
	ctx context.Context,
	id uuid.UUID,
	fn func(explorer.EditingContext) error,
) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}

	s.op.Lock()
	defer s.op.Unlock()

	if s.closed {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.editingContext())
}

func (m *manager) Process(ctx context.Context, ec explorer.EditingContext, out explorer.Outcome) error {
	if !out.Succeeded {
		return nil
	}

	s, err := m.session(ec.ID())
	if err != nil {
		return err
	}

	switch out.ChangeKind {
	case explorer.SemanticChange:
	case explorer.RepresentationToDelete:
		session, ok := explorer.AsEditable(ec)
		if !ok {
			return fmt.Errorf("%w: session %s", explorer.ErrContextNotEditable, s.id)
		}
		if err := m.deleteRepresentation(ctx, session, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown change kind %q", ErrInvalidOutcome, out.ChangeKind)
	}

	delivered := s.events.publish(Event{
		SessionID:  s.id,
		ChangeKind: out.ChangeKind,
		Parameters: out.Parameters,
		OccurredAt: time.Now().UTC(),
	})

	m.logger.Info(
		"outcome processed",
		"session_id", s.id,
		"change_kind", out.ChangeKind,
		"subscribers", delivered,
	)
	return nil
}

func (m *manager) Subscribe(id uuid.UUID) (<-chan Event, func(), error) {
	s, err := m.session(id)
	if err != nil {
		return nil, nil, err
	}

	events, cancel := s.events.subscribe()
	return events, cancel, nil
}

func (m *manager) Evict(documentID uuid.UUID) int {
	m.mu.RLock()
	open := slices.Collect(maps.Values(m.sessions))
	m.mu.RUnlock()

	uri := graph.URI(documentID)
	affected := 0
	for _, s := range open {
		removed := s.graph.Remove(func(r *graph.Resource) bool {
			return r.URI == uri
		})
		if len(removed) == 0 {
			continue
		}

		affected++
		s.events.publish(Event{
			SessionID:  s.id,
			ChangeKind: explorer.SemanticChange,
			Parameters: map[string]any{ParamDocumentID: documentID},
			OccurredAt: time.Now().UTC(),
		})
	}

	if affected > 0 {
		m.logger.Info("document evicted", "document_id", documentID, "sessions", affected)
	}
	return affected
}

func (m *manager) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting session manager")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		m.logger.Info("closing sessions")
		m.closeAll()
	})

	return nil
}

func (m *manager) closeAll() {
	m.mu.Lock()
	m.closed = true
	open := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range open {
		s.op.Lock()
		s.closed = true
		s.op.Unlock()
		s.events.close()
	}

	m.logger.Info("sessions closed", "count", len(open))
}

func (m *manager) session(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *manager) validate(cmd OpenCommand) ([]uuid.UUID, error) {
	if len(cmd.DocumentIDs) == 0 {
		return nil, fmt.Errorf("%w: document_ids required", ErrInvalidCommand)
	}

	seen := make(map[uuid.UUID]struct{}, len(cmd.DocumentIDs))
	ids := make([]uuid.UUID, 0, len(cmd.DocumentIDs))
	for _, id := range cmd.DocumentIDs {
		if id == uuid.Nil {
			return nil, fmt.Errorf("%w: nil document id", ErrInvalidCommand)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) > m.cfg.MaxDocuments {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDocuments, len(ids), m.cfg.MaxDocuments)
	}
	return ids, nil
}

func (m *manager) load(ctx context.Context, ids []uuid.UUID) ([]*graph.Resource, error) {
	resources := make([]*graph.Resource, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(m.cfg.LoadConcurrency, len(ids)), 1))

	for i, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			doc, err := m.docs.Find(gctx, id)
			if err != nil {
				return fmt.Errorf("find document %s: %w", id, err)
			}

			content, err := m.docs.Content(gctx, id)
			if err != nil {
				return fmt.Errorf("load document %s: %w", id, err)
			}

			resources[i] = graph.NewResource(doc.ID, doc.Name, content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrDocumentNotFound, err)
		}
		return nil, err
	}

	return resources, nil
}

func (m *manager) deleteRepresentation(ctx context.Context, session explorer.EditableSession, out explorer.Outcome) error {
	id, ok := out.RepresentationID()
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrInvalidOutcome, explorer.ParamRepresentationID)
	}

	rep, err := m.reps.Find(ctx, id)
	if err != nil {
		return representationFailure(id, err)
	}

	uri := graph.URI(rep.DocumentID)
	if !slices.ContainsFunc(session.GraphEntries(), func(r *graph.Resource) bool {
		return r.URI == uri
	}) {
		return fmt.Errorf("%w: representation %s, document %s", ErrRepresentationOutsideSession, id, rep.DocumentID)
	}

	if err := m.reps.Delete(ctx, id); err != nil {
		return representationFailure(id, err)
	}
	return nil
}

func representationFailure(id uuid.UUID, err error) error {
	if errors.Is(err, representations.ErrNotFound) {
		return fmt.Errorf("%w: representation %s", explorer.ErrRecordNotFound, id)
	}
	return fmt.Errorf("delete representation %s: %w", id, err)
}
