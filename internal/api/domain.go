package api

import (
	"fmt"

	"github.com/JaimeStill/canopy/internal/documents"
	"github.com/JaimeStill/canopy/internal/explorer"
	"github.com/JaimeStill/canopy/internal/representations"
	"github.com/JaimeStill/canopy/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents       documents.System
	Representations representations.System
	Sessions        sessions.System
	Explorer        *explorer.Dispatcher
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	repsSystem := representations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	sessionsSystem := sessions.New(
		docsSystem,
		repsSystem,
		&runtime.Sessions,
		runtime.Logger,
		runtime.Pagination,
	)

	explorerMetrics, err := explorer.NewMetrics(runtime.Metrics.Registerer())
	if err != nil {
		return nil, fmt.Errorf("explorer metrics: %w", err)
	}

	docs := sessions.EvictOnDelete(docsSystem, sessionsSystem)

	return &Domain{
		Documents:       docs,
		Representations: repsSystem,
		Sessions:        sessionsSystem,
		Explorer:        explorer.New(docs, runtime.Logger, explorerMetrics),
	}, nil
}
