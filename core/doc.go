// SPDX-License-Identifier: MIT

// Package core defines the pairwise graph store behind a layered CRF:
// Node and Edge records, their unary and pairwise potentials, and the
// thread-safe Graph that owns them.
//
// Nodes and edges live in two growable arenas indexed by integer id. Ids
// are handed out monotonically from 0 and never reused; removing a node or
// an edge leaves a tombstone (nil slot), so every id a caller holds either
// still names the same element or reports ErrNodeNotFound/ErrEdgeNotFound.
//
// Edges are undirected and canonical: Edge.From < Edge.To. The pairwise
// potential of an edge is a States(From)×States(To) matrix.Dense stored
// oriented From→To. New unary and pairwise potentials are all-zero.
// Potentials are costs (negative log-likelihoods): lower is more likely,
// and every stored entry is finite and non-negative.
//
// Determinism:
//
//	Nodes(), Edges() and Neighbors() return ids in ascending order.
//	NeighborIDs() returns adjacent node ids in ascending order.
//
// Concurrency:
//
//	One sync.RWMutex guards the arenas, adjacency and the pair index.
//	Topology changes take the write lock. Every slot carries its own
//	mutex for its potential and group: SetUnary, SetPotential, SetGroup
//	and the matching reads hold the read lock plus that slot mutex, so
//	fills over distinct ids run in parallel and readers of an id being
//	written see either the old or the new value.
//
// Errors:
//
//	ErrNodeNotFound        - requested node does not exist (or was removed).
//	ErrEdgeNotFound        - requested edge does not exist (or was removed).
//	ErrBadNode             - invalid layer/coordinate/state count on AddNode.
//	ErrLoopNotAllowed      - AddEdge with identical endpoints.
//	ErrMultiEdgeNotAllowed - a second edge between the same pair.
//	ErrBadPotential        - potential of the wrong shape, negative or non-finite.
//
// All errors are wrapped with call context (github.com/cockroachdb/errors);
// match them with errors.Is.
package core
