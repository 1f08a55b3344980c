// SPDX-License-Identifier: MIT
//
// File: layered.go
// Role: Store capability, the Layered wrapper, constructor and getters.

package layered

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/gridgraph"
	"github.com/katalvlaran/lvcrf/matrix"
)

// Store is the pairwise graph storage a Layered drives. *core.Graph
// implements it.
//
// SetUnary, SetPotential and SetGroup must be safe to call concurrently
// for distinct ids while the topology is not being mutated.
type Store interface {
	AddNode(layer, x, y, states int) (int, error)
	AddEdge(from, to int, kind core.EdgeKind) (int, error)
	Node(id int) (core.Node, error)
	Edge(id int) (core.Edge, error)
	EdgeBetween(u, v int) (int, bool)
	Neighbors(id int) ([]int, error)
	Edges() []int
	SetUnary(id int, pot []float64) error
	Unary(id int) ([]float64, error)
	SetPotential(edgeID int, pot *matrix.Dense) error
	Potential(edgeID int) (*matrix.Dense, error)
	SetGroup(edgeID int, group byte) error
	RemoveNode(id int) error
	RemoveEdge(id int) error
}

var _ Store = (*core.Graph)(nil)

// Layered is a multi-layer CRF graph over a W×H grid.
type Layered struct {
	store    Store
	cfg      Config
	topology Topology
	logger   *zap.Logger
	workers  int

	built bool
	size  gridgraph.Size
	// ids[layer·W·H + y·W + x] is the store id of node (layer, x, y).
	ids []int

	// groupPots remembers the last override applied per group.
	groupPots map[byte]*matrix.Dense
}

// New validates cfg and returns a Layered bound to store.
func New(store Store, cfg Config, opts ...Option) (*Layered, error) {
	if store == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "layered: New: nil store")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Layered{
		store:     store,
		cfg:       cfg,
		topology:  ChainTopology{},
		logger:    zap.NewNop(),
		workers:   cfg.Workers,
		groupPots: make(map[byte]*matrix.Dense),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.workers == 0 {
		g.workers = runtime.GOMAXPROCS(0)
	}

	return g, nil
}

// Size returns the grid extent recorded by AddNodes (zero until it succeeds).
func (g *Layered) Size() gridgraph.Size { return g.size }

// Type returns the configured edge families.
func (g *Layered) Type() GraphType { return g.cfg.Type }

// Layers returns the number of layers.
func (g *Layered) Layers() int { return g.cfg.Layers }

// Config returns the configuration the graph was built with.
func (g *Layered) Config() Config { return g.cfg }

// Store returns the underlying graph store.
func (g *Layered) Store() Store { return g.store }

// NodeID returns the store id AddNodes assigned to (layer, x, y). The id is
// returned even if the node was later marginalized.
func (g *Layered) NodeID(layer, x, y int) (int, error) {
	if !g.built {
		return 0, ErrNotBuilt
	}
	if layer < 0 || layer >= g.cfg.Layers || !g.size.InBounds(x, y) {
		return 0, errors.Wrapf(ErrInvalidArgument, "NodeID(%d,%d,%d)", layer, x, y)
	}

	return g.ids[g.cellIndex(layer, x, y)], nil
}

func (g *Layered) cellIndex(layer, x, y int) int {
	return layer*g.size.Area() + g.size.Index(x, y)
}

func (g *Layered) requireBuilt(op string) error {
	if !g.built {
		return errors.Wrap(ErrNotBuilt, op)
	}

	return nil
}

// parallelFor splits [0,n) into contiguous chunks and runs fn on each with
// at most g.workers goroutines. Chunks let fn reuse scratch buffers.
func (g *Layered) parallelFor(n int, fn func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	workers := min(g.workers, n)
	chunk := (n + workers - 1) / workers

	var eg errgroup.Group
	eg.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		eg.Go(func() error { return fn(lo, hi) })
	}

	return eg.Wait()
}
