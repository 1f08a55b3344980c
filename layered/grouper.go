// SPDX-License-Identifier: MIT
//
// File: grouper.go
// Role: geometric edge groups and group potential overrides.

package layered

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvcrf/matrix"
)

// DefineEdgeGroup tags with group every live edge whose endpoints lie on
// strictly opposite sides of the line a·x + b·y + c = 0, i.e. f(p1)·f(p2) < 0
// for f(p) = a·x + b·y + c. Edges touching or not crossing the line keep
// their current group. Calls are additive; group 0 resets crossing edges
// to ungrouped.
//
// Errors:
//   - ErrNotBuilt before AddNodes.
//   - ErrInvalidArgument if a == b == 0 or a coefficient is not finite.
func (g *Layered) DefineEdgeGroup(a, b, c float64, group byte) error {
	if err := g.requireBuilt("DefineEdgeGroup"); err != nil {
		return err
	}
	if a == 0 && b == 0 {
		return errors.Wrap(ErrInvalidArgument, "DefineEdgeGroup: a and b are both zero")
	}
	for _, v := range [...]float64{a, b, c} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidArgument, "DefineEdgeGroup: coefficient %v", v)
		}
	}
	line := func(x, y int) float64 { return a*float64(x) + b*float64(y) + c }

	// Stage 1: select.
	var tagged []int
	for _, eid := range g.store.Edges() {
		e, err := g.store.Edge(eid)
		if err != nil {
			return errors.Wrapf(err, "DefineEdgeGroup: edge %d", eid)
		}
		from, err := g.store.Node(e.From)
		if err != nil {
			return errors.Wrapf(err, "DefineEdgeGroup: edge %d", eid)
		}
		to, err := g.store.Node(e.To)
		if err != nil {
			return errors.Wrapf(err, "DefineEdgeGroup: edge %d", eid)
		}
		if line(from.X, from.Y)*line(to.X, to.Y) < 0 {
			tagged = append(tagged, eid)
		}
	}

	// Stage 2: tag.
	for _, eid := range tagged {
		if err := g.store.SetGroup(eid, group); err != nil {
			return errors.Wrapf(err, "DefineEdgeGroup: edge %d", eid)
		}
	}

	g.logger.Debug("edge group defined",
		zap.Uint8("group", group),
		zap.Float64s("line", []float64{a, b, c}),
		zap.Int("tagged", len(tagged)))

	return nil
}

// SetGroupPot copies pot onto every edge currently tagged with group and
// remembers it as the group's override. pot is read oriented From→To and
// must match every tagged edge's States(From)×States(To); all tagged edges
// are checked before any is written. A group with no edges is a no-op.
//
// Errors:
//   - ErrNotBuilt before AddNodes.
//   - ErrInvalidArgument for group 0 (the ungrouped default), or a nil,
//     negative or non-finite pot.
//   - ErrDimensionMismatch if pot does not fit a tagged edge.
func (g *Layered) SetGroupPot(group byte, pot *matrix.Dense) error {
	if err := g.requireBuilt("SetGroupPot"); err != nil {
		return err
	}
	if group == 0 {
		return errors.Wrap(ErrInvalidArgument, "SetGroupPot: group 0 is the ungrouped default")
	}
	if err := matrix.ValidateNonNegative(pot); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "SetGroupPot(%d): %v", group, err)
	}

	edges, err := g.groupEdges(group)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return nil
	}

	// Stage 1: validate every target.
	for _, eid := range edges {
		e, err := g.store.Edge(eid)
		if err != nil {
			return errors.Wrapf(err, "SetGroupPot(%d): edge %d", group, eid)
		}
		from, err := g.store.Node(e.From)
		if err != nil {
			return errors.Wrapf(err, "SetGroupPot(%d): edge %d", group, eid)
		}
		to, err := g.store.Node(e.To)
		if err != nil {
			return errors.Wrapf(err, "SetGroupPot(%d): edge %d", group, eid)
		}
		if err = matrix.ValidateShape(pot, from.States, to.States); err != nil {
			return errors.Wrapf(ErrDimensionMismatch, "SetGroupPot(%d): edge %d: %v", group, eid, err)
		}
	}

	// Stage 2: write copies.
	for _, eid := range edges {
		if err := g.store.SetPotential(eid, pot); err != nil {
			return errors.Wrapf(err, "SetGroupPot(%d): edge %d", group, eid)
		}
	}
	g.groupPots[group] = pot.CloneDense()

	g.logger.Debug("group potential applied",
		zap.Uint8("group", group),
		zap.Int("edges", len(edges)))

	return nil
}

// GroupEdges returns the ids of live edges tagged with group, ascending.
// Returns nil before AddNodes.
func (g *Layered) GroupEdges(group byte) []int {
	if !g.built {
		return nil
	}
	edges, _ := g.groupEdges(group)

	return edges
}

// GroupPot returns a copy of the last override applied to group.
func (g *Layered) GroupPot(group byte) (*matrix.Dense, bool) {
	pot, ok := g.groupPots[group]
	if !ok {
		return nil, false
	}

	return pot.CloneDense(), true
}

func (g *Layered) groupEdges(group byte) ([]int, error) {
	var out []int
	for _, eid := range g.store.Edges() {
		e, err := g.store.Edge(eid)
		if err != nil {
			return nil, errors.Wrapf(err, "group %d: edge %d", group, eid)
		}
		if e.Group == group {
			out = append(out, eid)
		}
	}

	return out, nil
}
