// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle, unary potentials & queries.
//
// Determinism:
//   - Nodes() returns live ids ascending.
//
// Concurrency:
//   - AddNode/RemoveNode under the write lock.
//   - SetUnary/Unary/Node/Nodes under the read lock.

package core

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvcrf/matrix"
)

// AddNode appends a node to the arena and returns its id.
//
// The unary potential is zero-initialised with length states.
//
// Errors:
//   - ErrBadNode: layer < 0, x < 0, y < 0 or states < 1.
//
// Complexity: O(states) amortized.
func (g *Graph) AddNode(layer, x, y, states int) (int, error) {
	if layer < 0 || x < 0 || y < 0 || states < 1 {
		return 0, errors.Wrapf(ErrBadNode, "AddNode(layer=%d, x=%d, y=%d, states=%d)", layer, x, y, states)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := len(g.nodes)
	g.nodes = append(g.nodes, &nodeSlot{
		Node: Node{ID: id, Layer: layer, X: x, Y: y, States: states},
		pot:  make([]float64, states),
	})
	g.adjacency = append(g.adjacency, nil)
	g.liveNodes++

	return id, nil
}

// HasNode reports whether id names a live node.
func (g *Graph) HasNode(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodeLocked(id) != nil
}

// Node returns a snapshot of the node with the given id.
func (g *Graph) Node(id int) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.nodeLocked(id)
	if n == nil {
		return Node{}, errors.Wrapf(ErrNodeNotFound, "Node(%d)", id)
	}

	return n.Node, nil
}

// Nodes returns the ids of all live nodes in ascending order.
// Complexity: O(span).
func (g *Graph) Nodes() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, g.liveNodes)
	for id, n := range g.nodes {
		if n != nil {
			out = append(out, id)
		}
	}

	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.liveNodes
}

// SetUnary replaces the unary potential of node id with a copy of pot.
//
// Errors:
//   - ErrNodeNotFound if id is not live.
//   - ErrBadPotential if len(pot) != States or an entry is negative/non-finite.
//
// Concurrency: read lock plus the slot mutex.
func (g *Graph) SetUnary(id int, pot []float64) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.nodeLocked(id)
	if n == nil {
		return errors.Wrapf(ErrNodeNotFound, "SetUnary(%d)", id)
	}
	if err := matrix.ValidateVector(pot, n.States); err != nil {
		return errors.Wrapf(ErrBadPotential, "SetUnary(%d): %v", id, err)
	}
	cp := make([]float64, len(pot))
	copy(cp, pot)
	n.mu.Lock()
	n.pot = cp
	n.mu.Unlock()

	return nil
}

// Unary returns a copy of the unary potential of node id.
func (g *Graph) Unary(id int) ([]float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.nodeLocked(id)
	if n == nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "Unary(%d)", id)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]float64, len(n.pot))
	copy(out, n.pot)

	return out, nil
}

// RemoveNode deletes the node and every incident edge.
// The node id and the incident edge ids become tombstones and are never
// handed out again.
//
// Errors:
//   - ErrNodeNotFound if id is not live.
//
// Complexity: O(deg(id) · avg deg) for adjacency unlinking.
func (g *Graph) RemoveNode(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.nodeLocked(id) == nil {
		return errors.Wrapf(ErrNodeNotFound, "RemoveNode(%d)", id)
	}
	// Copy: removeEdgeLocked mutates g.adjacency[id].
	incident := append([]int(nil), g.adjacency[id]...)
	for _, eid := range incident {
		g.removeEdgeLocked(eid)
	}
	g.nodes[id] = nil
	g.adjacency[id] = nil
	g.liveNodes--

	return nil
}

// nodeLocked returns the live slot for id or nil. Caller holds mu.
func (g *Graph) nodeLocked(id int) *nodeSlot {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}

	return g.nodes[id]
}
