package supply

import (
	"github.com/google/uuid"
)

// CostGraph is an immutable snapshot of the supply catalog keyed by
// supply id. Recipe lines are the directed edges. A graph is built once
// per request from the store and is never mutated by the resolver or
// validator; concurrent edits show up only in later snapshots.
type CostGraph map[uuid.UUID]*Supply

// NewCostGraph builds a snapshot from a slice of supplies
func NewCostGraph(supplies []Supply) CostGraph {
	graph := make(CostGraph, len(supplies))
	for i := range supplies {
		graph[supplies[i].ID] = &supplies[i]
	}
	return graph
}

// Get returns the supply for the given id, or nil if absent
func (g CostGraph) Get(id uuid.UUID) *Supply {
	return g[id]
}

// Contains reports whether the graph holds the given id
func (g CostGraph) Contains(id uuid.UUID) bool {
	_, ok := g[id]
	return ok
}

// With returns a copy of the graph where candidate replaces any
// existing entry with the same id. Used by validation to test the
// candidate's prospective state without touching the live snapshot.
func (g CostGraph) With(candidate *Supply) CostGraph {
	next := make(CostGraph, len(g)+1)
	for id, s := range g {
		next[id] = s
	}
	next[candidate.ID] = candidate
	return next
}
