// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle, pairwise potentials, groups & queries.
// Determinism:
//   - Edges() returns live edge ids ascending.
//   - Edge ids are monotonic: the k-th AddEdge call returns k (from 0).
// Concurrency:
//   - AddEdge/RemoveEdge under the write lock.
//   - SetPotential/SetGroup and all queries under the read lock; Group and
//     the potential additionally under the slot mutex.

package core

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvcrf/matrix"
)

// AddEdge creates an undirected edge between nodes a and b.
//
// Steps:
//  1. Reject a == b (ErrLoopNotAllowed).
//  2. Lock; resolve both endpoints (ErrNodeNotFound).
//  3. Reject an existing edge between the pair (ErrMultiEdgeNotAllowed).
//  4. Canonicalize From=min(a,b), To=max(a,b) and store a zero potential of
//     shape States(From)×States(To).
//  5. Link the id into both adjacency lists.
//
// Complexity: O(States(From)·States(To)) for the zero potential.
func (g *Graph) AddEdge(a, b int, kind EdgeKind) (int, error) {
	if a == b {
		return 0, errors.Wrapf(ErrLoopNotAllowed, "AddEdge(%d,%d)", a, b)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := newPairKey(a, b)
	from, to := g.nodeLocked(key.u), g.nodeLocked(key.v)
	if from == nil || to == nil {
		return 0, errors.Wrapf(ErrNodeNotFound, "AddEdge(%d,%d)", a, b)
	}
	if _, exists := g.pairs[key]; exists {
		return 0, errors.Wrapf(ErrMultiEdgeNotAllowed, "AddEdge(%d,%d)", a, b)
	}

	pot, err := matrix.NewDense(from.States, to.States)
	if err != nil {
		return 0, errors.Wrapf(err, "AddEdge(%d,%d)", a, b)
	}

	eid := len(g.edges)
	g.edges = append(g.edges, &edgeSlot{
		Edge: Edge{ID: eid, From: key.u, To: key.v, Kind: kind},
		pot:  pot,
	})
	g.pairs[key] = eid
	// eid is the largest id so far: appending keeps adjacency sorted.
	g.adjacency[key.u] = append(g.adjacency[key.u], eid)
	g.adjacency[key.v] = append(g.adjacency[key.v], eid)
	g.liveEdges++

	return eid, nil
}

// RemoveEdge deletes one edge. Its id becomes a tombstone.
func (g *Graph) RemoveEdge(eid int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.edgeLocked(eid) == nil {
		return errors.Wrapf(ErrEdgeNotFound, "RemoveEdge(%d)", eid)
	}
	g.removeEdgeLocked(eid)

	return nil
}

// HasEdge reports whether an edge between a and b exists (either order).
func (g *Graph) HasEdge(a, b int) bool {
	_, ok := g.EdgeBetween(a, b)
	return ok
}

// EdgeBetween returns the id of the edge between a and b (either order).
// Complexity: O(1).
func (g *Graph) EdgeBetween(a, b int) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	eid, ok := g.pairs[newPairKey(a, b)]

	return eid, ok
}

// Edge returns a snapshot of the edge with the given id.
func (g *Graph) Edge(eid int) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e := g.edgeLocked(eid)
	if e == nil {
		return Edge{}, errors.Wrapf(ErrEdgeNotFound, "Edge(%d)", eid)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.Edge, nil
}

// Edges returns the ids of all live edges in ascending order.
func (g *Graph) Edges() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, g.liveEdges)
	for id, e := range g.edges {
		if e != nil {
			out = append(out, id)
		}
	}

	return out
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.liveEdges
}

// SetPotential replaces the potential of edge eid with a copy of pot.
//
// pot is oriented From→To and must be States(From)×States(To), finite and
// non-negative; otherwise ErrBadPotential and the edge is left unchanged.
//
// Concurrency: read lock plus the slot mutex; safe alongside readers and
// writers of any edge.
func (g *Graph) SetPotential(eid int, pot *matrix.Dense) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e := g.edgeLocked(eid)
	if e == nil {
		return errors.Wrapf(ErrEdgeNotFound, "SetPotential(%d)", eid)
	}
	if err := g.checkPotentialLocked(e, pot); err != nil {
		return errors.Wrapf(ErrBadPotential, "SetPotential(%d): %v", eid, err)
	}
	cp := pot.CloneDense()
	e.mu.Lock()
	e.pot = cp
	e.mu.Unlock()

	return nil
}

// Potential returns a copy of the potential of edge eid, oriented From→To.
func (g *Graph) Potential(eid int) (*matrix.Dense, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e := g.edgeLocked(eid)
	if e == nil {
		return nil, errors.Wrapf(ErrEdgeNotFound, "Potential(%d)", eid)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pot.CloneDense(), nil
}

// SetGroup tags edge eid with group.
func (g *Graph) SetGroup(eid int, group byte) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e := g.edgeLocked(eid)
	if e == nil {
		return errors.Wrapf(ErrEdgeNotFound, "SetGroup(%d)", eid)
	}
	e.mu.Lock()
	e.Group = group
	e.mu.Unlock()

	return nil
}

func (g *Graph) checkPotentialLocked(e *edgeSlot, pot *matrix.Dense) error {
	if err := matrix.ValidateShape(pot, g.nodes[e.From].States, g.nodes[e.To].States); err != nil {
		return err
	}

	return matrix.ValidateNonNegative(pot)
}

// edgeLocked returns the live slot for eid or nil. Caller holds mu.
func (g *Graph) edgeLocked(eid int) *edgeSlot {
	if eid < 0 || eid >= len(g.edges) {
		return nil
	}

	return g.edges[eid]
}

// removeEdgeLocked unlinks a live edge from the pair index and both
// adjacency lists, then tombstones it. Caller holds the write lock.
func (g *Graph) removeEdgeLocked(eid int) {
	e := g.edges[eid]
	delete(g.pairs, newPairKey(e.From, e.To))
	removeAdjacency(g, e.From, eid)
	removeAdjacency(g, e.To, eid)
	g.edges[eid] = nil
	g.liveEdges--
}
