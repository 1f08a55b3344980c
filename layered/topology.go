// SPDX-License-Identifier: MIT
//
// File: topology.go
// Role: layer-linking policies and AddNodes.
//
// Determinism:
//   - Nodes: layer asc, then y asc, then x asc.
//   - Within-layer edges: per layer, per cell in raster order, forward
//     offsets right, bottom, bottom-right, bottom-left.
//   - Links: per cell in raster order, pairs in Topology order.

package layered

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/gridgraph"
)

// Topology decides which layers are linked at every cell when TypeLink is
// set. LinkPairs returns (lower, upper) layer pairs; each pair yields one
// link edge per cell.
type Topology interface {
	LinkPairs(layers int) [][2]int
}

// ChainTopology links adjacent layers only: (0,1), (1,2), …
type ChainTopology struct{}

// LinkPairs returns (i, i+1) for i in [0, layers-1).
func (ChainTopology) LinkPairs(layers int) [][2]int {
	out := make([][2]int, 0, max(layers-1, 0))
	for i := 0; i+1 < layers; i++ {
		out = append(out, [2]int{i, i + 1})
	}

	return out
}

// StarTopology links every layer directly to the base layer: (0,1), (0,2), …
type StarTopology struct{}

// LinkPairs returns (0, i) for i in [1, layers).
func (StarTopology) LinkPairs(layers int) [][2]int {
	out := make([][2]int, 0, max(layers-1, 0))
	for i := 1; i < layers; i++ {
		out = append(out, [2]int{0, i})
	}

	return out
}

// AddNodes builds the whole topology for a width×height grid: one node per
// (layer, cell), within-layer edges per Type and links per Topology.
// It may be called only once.
//
// Errors:
//   - ErrAlreadyBuilt on a second call.
//   - ErrInvalidArgument for width or height <= 0, or a Topology pair
//     outside [0, Layers) or linking a layer to itself.
//   - Store errors, wrapped. The nodes added so far are removed again (with
//     their edges) and the graph stays unbuilt, so AddNodes may be retried.
//
// Complexity: O(L·W·H) nodes and edges.
func (g *Layered) AddNodes(width, height int) error {
	if g.built {
		return errors.Wrap(ErrAlreadyBuilt, "AddNodes")
	}
	size := gridgraph.Size{Width: width, Height: height}
	if !size.Valid() {
		return errors.Wrapf(ErrInvalidArgument, "AddNodes(%d,%d)", width, height)
	}
	var pairs [][2]int
	if g.cfg.Type.Has(TypeLink) {
		pairs = g.topology.LinkPairs(g.cfg.Layers)
		for _, p := range pairs {
			if p[0] == p[1] || p[0] < 0 || p[1] < 0 || p[0] >= g.cfg.Layers || p[1] >= g.cfg.Layers {
				return errors.Wrapf(ErrInvalidArgument, "AddNodes: link pair %v with %d layers", p, g.cfg.Layers)
			}
		}
	}

	g.size = size
	g.ids = make([]int, 0, g.cfg.Layers*size.Area())
	within, links, err := g.wire(pairs)
	if err != nil {
		return g.unwind(err)
	}

	g.built = true
	g.logger.Debug("topology built",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("layers", g.cfg.Layers),
		zap.Stringer("type", g.cfg.Type),
		zap.Int("nodes", len(g.ids)),
		zap.Int("edges", within),
		zap.Int("links", links))

	return nil
}

// wire adds the nodes, within-layer edges and links for g.size, recording
// node ids in g.ids as it goes.
func (g *Layered) wire(pairs [][2]int) (within, links int, err error) {
	size := g.size

	// Stage 1: nodes.
	for layer := 0; layer < g.cfg.Layers; layer++ {
		states := g.cfg.States(layer)
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				id, err := g.store.AddNode(layer, x, y, states)
				if err != nil {
					return within, links, errors.Wrapf(err, "AddNodes: node (%d,%d,%d)", layer, x, y)
				}
				g.ids = append(g.ids, id)
			}
		}
	}

	// Stage 2: within-layer edges.
	offsets := gridgraph.ForwardOffsets(g.cfg.Type.Has(TypeGrid), g.cfg.Type.Has(TypeDiag))
	for layer := 0; layer < g.cfg.Layers; layer++ {
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				from := g.ids[g.cellIndex(layer, x, y)]
				for _, off := range offsets {
					nx, ny := x+off[0], y+off[1]
					if !size.InBounds(nx, ny) {
						continue
					}
					if _, err := g.store.AddEdge(from, g.ids[g.cellIndex(layer, nx, ny)], core.KindWithin); err != nil {
						return within, links, errors.Wrapf(err, "AddNodes: edge (%d,%d)-(%d,%d) in layer %d", x, y, nx, ny, layer)
					}
					within++
				}
			}
		}
	}

	// Stage 3: links.
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			for _, p := range pairs {
				a, b := g.ids[g.cellIndex(p[0], x, y)], g.ids[g.cellIndex(p[1], x, y)]
				if _, err := g.store.AddEdge(a, b, core.KindLink); err != nil {
					return within, links, errors.Wrapf(err, "AddNodes: link (%d,%d) layers %d-%d", x, y, p[0], p[1])
				}
				links++
			}
		}
	}

	return within, links, nil
}

// unwind removes every node a failed AddNodes added, newest first, and
// resets the grid state. A failing removal is attached to cause.
func (g *Layered) unwind(cause error) error {
	for i := len(g.ids) - 1; i >= 0; i-- {
		if err := g.store.RemoveNode(g.ids[i]); err != nil {
			cause = errors.CombineErrors(cause, errors.Wrapf(err, "AddNodes: unwind node %d", g.ids[i]))
		}
	}
	g.logger.Debug("topology unwound", zap.Int("nodes", len(g.ids)), zap.Error(cause))
	g.size = gridgraph.Size{}
	g.ids = nil

	return cause
}
