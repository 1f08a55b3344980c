// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs) and adjacency helpers.
// Determinism:
//   - Neighbors() returns incident edge ids ascending.
//   - NeighborIDs() returns adjacent node ids ascending.
// Concurrency:
//   - Read operations hold the read lock.
//   - Helpers are called only under the write lock by mutating code.

package core

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Neighbors returns the ids of all edges incident to node id, ascending.
// The returned slice is a copy.
//
// Errors:
//   - ErrNodeNotFound: if the node does not exist.
//
// Complexity: O(d).
func (g *Graph) Neighbors(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.nodeLocked(id) == nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "Neighbors(%d)", id)
	}

	return append([]int(nil), g.adjacency[id]...), nil
}

// NeighborIDs returns the ids of nodes adjacent to id, ascending.
// Complexity: O(d log d).
func (g *Graph) NeighborIDs(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.nodeLocked(id) == nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "NeighborIDs(%d)", id)
	}
	out := make([]int, 0, len(g.adjacency[id]))
	for _, eid := range g.adjacency[id] {
		e := g.edges[eid]
		if e.From == id {
			out = append(out, e.To)
		} else {
			out = append(out, e.From)
		}
	}
	sort.Ints(out)

	return out, nil
}

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.nodeLocked(id) == nil {
		return 0, errors.Wrapf(ErrNodeNotFound, "Degree(%d)", id)
	}

	return len(g.adjacency[id]), nil
}

// removeAdjacency drops eid from node's incident list, keeping it sorted.
// Must be called ONLY under the write lock.
func removeAdjacency(g *Graph, node, eid int) {
	list := g.adjacency[node]
	i := sort.SearchInts(list, eid)
	if i < len(list) && list[i] == eid {
		g.adjacency[node] = append(list[:i], list[i+1:]...)
	}
}
