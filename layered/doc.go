// SPDX-License-Identifier: MIT

// Package layered builds and edits a multi-layer pairwise CRF over a 2D
// grid: several labeling layers of the same W×H lattice (for example a
// base semantic layer and an occlusion layer), wired within each layer by
// grid and diagonal edges and across layers by link edges.
//
// A Layered wraps a graph Store (normally *core.Graph) and drives it
// through four stages:
//
//	AddNodes          topology: one node per (layer, cell), within-layer
//	                  edges per GraphType, links per Topology. Runs once.
//	SetNodes          unary potentials from per-pixel score grids.
//	FillEdges         pairwise potentials from per-pixel features through
//	                  a trainer.Model, scaled by the edge or link weight.
//	DefineEdgeGroup   tag edges crossing a line; SetGroupPot overrides the
//	                  potential of every tagged edge.
//	Marginalize       eliminate nodes, rewiring their neighbors with
//	                  induced edges that carry the composed path cost.
//
// Node ids:
//
//	AddNodes creates nodes layer-major, then row (y), then column (x).
//	On an empty store the id of (layer, x, y) is layer·W·H + y·W + x;
//	NodeID resolves it for any store.
//
// Potentials are costs (negative log-likelihoods): lower is more likely.
// Marginalization composes a path u–n–v with the min-plus product
//
//	P_uv[a][b] = min_k ( P_un[a][k] + P_nv[k][b] )
//
// which keeps, for every (a, b), the cheapest state of the eliminated node.
//
// Concurrency:
//
//	SetNodes and FillEdges fan out over a bounded errgroup (Workers); each
//	worker writes disjoint node or edge slots. A Layered itself is not safe
//	for concurrent use: calls must be serialized by the caller.
//
// Errors:
//
//	ErrNotBuilt          - operation called before AddNodes.
//	ErrAlreadyBuilt      - AddNodes called twice.
//	ErrInvalidArgument   - bad sizes, missing trainer, A = B = 0, bad config.
//	ErrDimensionMismatch - grid size, channel count or potential shape mismatch.
//	ErrUnsupportedPath   - marginalization would need a path through more
//	                       than two eliminated nodes.
//	ErrNotFound          - marginalizing an unknown or removed node.
//
// Every bulk operation validates before it writes: on error the store is
// left exactly as it was.
package layered
