package explorer

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/graph"
)

// EditingContext is a live editing session handle.
type EditingContext interface {
	ID() uuid.UUID
}

// EditableSession is an EditingContext exposing its in-memory graph set.
// Implementations synchronize mutation; handlers assume exclusive access
// for the duration of Handle and take no locks themselves.
type EditableSession interface {
	EditingContext
	GraphEntries() []*graph.Resource
	// RemoveGraphEntries drops every entry matched and returns the removed entries.
	RemoveGraphEntries(match func(*graph.Resource) bool) []*graph.Resource
	// RestoreGraphEntries puts back entries previously returned by RemoveGraphEntries.
	RestoreGraphEntries(entries []*graph.Resource)
}

// AsEditable returns the editable view of ec, if it has one.
func AsEditable(ec EditingContext) (EditableSession, bool) {
	if ec == nil {
		return nil, false
	}
	s, ok := ec.(EditableSession)
	return s, ok
}
