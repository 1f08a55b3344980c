// SPDX-License-Identifier: MIT

package core

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvcrf/matrix"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadNode indicates invalid node attributes (negative layer, states < 1).
	ErrBadNode = errors.New("core: invalid node attributes")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrBadPotential indicates a potential whose shape does not match the
	// endpoint state counts, or which holds negative / non-finite entries.
	ErrBadPotential = errors.New("core: invalid potential")
)

// EdgeKind classifies an edge by how it was created.
type EdgeKind uint8

const (
	// KindWithin connects grid- or diagonal-adjacent nodes of one layer.
	KindWithin EdgeKind = iota
	// KindLink connects the same (x,y) cell across two layers.
	KindLink
	// KindInduced is an edge synthesized by node marginalization.
	KindInduced
)

// String returns a short lowercase name of the kind.
func (k EdgeKind) String() string {
	switch k {
	case KindWithin:
		return "within"
	case KindLink:
		return "link"
	case KindInduced:
		return "induced"
	default:
		return "unknown"
	}
}

// Node is a read-only snapshot of a graph node.
type Node struct {
	// ID is the arena index of the node.
	ID int

	// Layer is the labeling layer the node belongs to (0 = base).
	Layer int

	// X, Y are the grid coordinates of the node.
	X, Y int

	// States is the number of classes; the unary potential has this length.
	States int
}

// Edge is a read-only snapshot of an undirected graph edge.
//
// From < To always holds: the potential is stored oriented From→To, with
// rows indexed by the states of From and columns by the states of To.
type Edge struct {
	ID       int
	From, To int
	Kind     EdgeKind

	// Group tags the edge for bulk potential overrides; 0 means ungrouped.
	Group byte
}

// nodeSlot is the arena record behind a live node.
// Node is immutable after AddNode; mu guards pot.
type nodeSlot struct {
	Node

	mu  sync.Mutex
	pot []float64 // unary potential, len == States
}

// edgeSlot is the arena record behind a live edge.
// ID, From, To and Kind are immutable after AddEdge; mu guards Group and pot.
type edgeSlot struct {
	Edge

	mu  sync.Mutex
	pot *matrix.Dense // States(From) × States(To)
}

// pairKey is the canonical (min,max) endpoint pair of an edge.
type pairKey struct {
	u, v int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{u: a, v: b}
}

// Graph is the in-memory pairwise graph store.
//
// mu guards the topology: both arenas, adjacency and the pair index.
// Potential and group accesses hold the read lock plus the slot's own
// mutex, so they run in parallel across ids and never race on one id.
type Graph struct {
	mu sync.RWMutex

	nodes []*nodeSlot // id → slot; nil once removed
	edges []*edgeSlot // id → slot; nil once removed

	// adjacency[nodeID] = incident edge ids in ascending order
	adjacency [][]int

	// pairs indexes live edges by canonical endpoint pair
	pairs map[pairKey]int

	liveNodes int
	liveEdges int
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{pairs: make(map[pairKey]int)}
}

// GraphStats is a read-only snapshot of graph sizes.
type GraphStats struct {
	NodeCount    int
	EdgeCount    int
	WithinCount  int
	LinkCount    int
	InducedCount int

	// NodeIDSpan / EdgeIDSpan count ids ever handed out, tombstones included.
	NodeIDSpan int
	EdgeIDSpan int
}
