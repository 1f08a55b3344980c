// SPDX-License-Identifier: MIT
//
// File: filler.go
// Role: unary and pairwise potential assignment.
//
// Both operations are two-phase: validate (and, for edges, compute into a
// staging slice), then write. A failing call leaves the store untouched.
// Each phase fans out over parallelFor; workers write disjoint slots.

package layered

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/gridgraph"
	"github.com/katalvlaran/lvcrf/matrix"
	"github.com/katalvlaran/lvcrf/trainer"
)

// SetNodes sets the unary potential of every node from per-pixel score
// grids: layer 0 reads unaryBase, every other layer reads unaryOther.
// unaryOther may be nil for a single-layer graph.
//
// Errors:
//   - ErrNotBuilt before AddNodes.
//   - ErrInvalidArgument for a missing grid, or a negative / non-finite score.
//   - ErrDimensionMismatch if a grid's size differs from Size() or its
//     channel count from the layer's state count.
func (g *Layered) SetNodes(unaryBase, unaryOther *gridgraph.Vectors) error {
	if err := g.requireBuilt("SetNodes"); err != nil {
		return err
	}

	// Stage 1: shape checks.
	grids := []*gridgraph.Vectors{unaryBase}
	if g.cfg.Layers > 1 {
		grids = append(grids, unaryOther)
	}
	for i, grid := range grids {
		if grid == nil {
			return errors.Wrapf(ErrInvalidArgument, "SetNodes: grid %d is nil", i)
		}
		if grid.Size() != g.size {
			return errors.Wrapf(ErrDimensionMismatch, "SetNodes: grid %d is %dx%d, graph is %dx%d",
				i, grid.Size().Width, grid.Size().Height, g.size.Width, g.size.Height)
		}
		if grid.Channels() != g.cfg.States(i) {
			return errors.Wrapf(ErrDimensionMismatch, "SetNodes: grid %d has %d channels, want %d states",
				i, grid.Channels(), g.cfg.States(i))
		}
	}
	gridOf := func(layer int) *gridgraph.Vectors {
		return grids[min(layer, 1)]
	}

	// Stage 2: value checks.
	area := g.size.Area()
	err := g.parallelFor(len(grids)*area, func(lo, hi int) error {
		var buf []float64
		for i := lo; i < hi; i++ {
			x, y := g.size.Coordinate(i % area)
			grid := grids[i/area]
			buf = grid.Vector(x, y, buf)
			if err := matrix.ValidateVector(buf, grid.Channels()); err != nil {
				return errors.Wrapf(ErrInvalidArgument, "SetNodes: grid %d cell (%d,%d): %v", i/area, x, y, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Stage 3: writes.
	err = g.parallelFor(len(g.ids), func(lo, hi int) error {
		var buf []float64
		for i := lo; i < hi; i++ {
			layer := i / area
			x, y := g.size.Coordinate(i % area)
			buf = gridOf(layer).Vector(x, y, buf)
			if err := g.store.SetUnary(g.ids[i], buf); err != nil {
				if errors.Is(err, core.ErrNodeNotFound) {
					// Marginalized nodes keep no potential.
					continue
				}
				return errors.Wrapf(err, "SetNodes: node %d", g.ids[i])
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	g.logger.Debug("nodes filled", zap.Int("nodes", len(g.ids)))

	return nil
}

// edgeJob is one edge scheduled by FillEdges.
type edgeJob struct {
	eid      int
	from, to core.Node
	model    trainer.Model
	weight   float64
}

// FillEdges computes the pairwise potential of every within-layer and link
// edge from the feature vectors at its endpoints: edge handles within-layer
// edges, link handles links. Each result is scaled by the edge or link
// weight (Config defaults, overridable with WithEdgeWeight and
// WithLinkWeight) and stored oriented From→To. Induced edges are skipped.
//
// Models implementing trainer.Sized are asked for a potential of the exact
// endpoint shape; others must return it themselves.
//
// Errors:
//   - ErrNotBuilt before AddNodes.
//   - ErrInvalidArgument for nil features, or a nil model for a kind that
//     has edges.
//   - ErrDimensionMismatch for a feature grid of the wrong size, or a model
//     result of the wrong shape.
//   - Model errors (e.g. trainer.ErrInvalidParameters), wrapped.
func (g *Layered) FillEdges(edge, link trainer.Model, features gridgraph.Source, params []float64, opts ...FillOption) error {
	if err := g.requireBuilt("FillEdges"); err != nil {
		return err
	}
	if features == nil {
		return errors.Wrap(ErrInvalidArgument, "FillEdges: nil features")
	}
	if v, ok := features.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(ErrDimensionMismatch, "FillEdges: features: %v", err)
		}
	}
	if features.Size() != g.size {
		return errors.Wrapf(ErrDimensionMismatch, "FillEdges: features are %dx%d, graph is %dx%d",
			features.Size().Width, features.Size().Height, g.size.Width, g.size.Height)
	}
	fc := fillConfig{edgeWeight: g.cfg.EdgeWeight, linkWeight: g.cfg.LinkWeight}
	for _, opt := range opts {
		opt(&fc)
	}

	// Stage 1: schedule.
	eids := g.store.Edges()
	jobs := make([]edgeJob, 0, len(eids))
	for _, eid := range eids {
		e, err := g.store.Edge(eid)
		if err != nil {
			return errors.Wrapf(err, "FillEdges: edge %d", eid)
		}
		job := edgeJob{eid: eid}
		switch e.Kind {
		case core.KindWithin:
			job.model, job.weight = edge, fc.edgeWeight
		case core.KindLink:
			job.model, job.weight = link, fc.linkWeight
		default:
			continue
		}
		if job.model == nil {
			return errors.Wrapf(ErrInvalidArgument, "FillEdges: no model for %s edges", e.Kind)
		}
		if job.from, err = g.store.Node(e.From); err != nil {
			return errors.Wrapf(err, "FillEdges: edge %d", eid)
		}
		if job.to, err = g.store.Node(e.To); err != nil {
			return errors.Wrapf(err, "FillEdges: edge %d", eid)
		}
		jobs = append(jobs, job)
	}

	// Stage 2: compute and validate into staging.
	staged := make([]*matrix.Dense, len(jobs))
	err := g.parallelFor(len(jobs), func(lo, hi int) error {
		var a, b []float64
		for i := lo; i < hi; i++ {
			job := &jobs[i]
			a = features.Vector(job.from.X, job.from.Y, a)
			b = features.Vector(job.to.X, job.to.Y, b)
			pot, err := computePotential(job, a, b, params)
			if err != nil {
				return errors.Wrapf(err, "FillEdges: edge %d", job.eid)
			}
			staged[i] = pot
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Stage 3: commit.
	err = g.parallelFor(len(jobs), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if err := g.store.SetPotential(jobs[i].eid, staged[i]); err != nil {
				return errors.Wrapf(err, "FillEdges: edge %d", jobs[i].eid)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	g.logger.Debug("edges filled",
		zap.Int("edges", len(jobs)),
		zap.Float64("edge_weight", fc.edgeWeight),
		zap.Float64("link_weight", fc.linkWeight))

	return nil
}

// FillEdgesStack is FillEdges for features given as a sequence of
// single-channel grids; the vector of a cell is the concatenation of the
// channel values in order.
func (g *Layered) FillEdgesStack(edge, link trainer.Model, features []*gridgraph.Channel, params []float64, opts ...FillOption) error {
	if len(features) == 0 {
		return errors.Wrap(ErrInvalidArgument, "FillEdgesStack: no channels")
	}

	return g.FillEdges(edge, link, gridgraph.Stack(features), params, opts...)
}

// computePotential runs the model for one edge, scales the result and
// checks it against the endpoint state counts.
func computePotential(job *edgeJob, a, b, params []float64) (*matrix.Dense, error) {
	var (
		pot *matrix.Dense
		err error
	)
	if sized, ok := job.model.(trainer.Sized); ok {
		pot, err = sized.PotentialSized(job.from.States, job.to.States, a, b, params)
	} else {
		pot, err = job.model.Potential(a, b, params)
	}
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateShape(pot, job.from.States, job.to.States); err != nil {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%v", err)
	}
	// Scale copies, so a model may hand out a shared matrix.
	if pot, err = matrix.Scale(pot, job.weight); err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	if err = matrix.ValidateNonNegative(pot); err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "%v", err)
	}

	return pot, nil
}
