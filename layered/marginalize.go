// SPDX-License-Identifier: MIT
//
// File: marginalize.go
// Role: node elimination with induced edges.
//
// Composition (costs, min-plus):
//
//	u–n–v:      P_uv = P_un ⊗ P_nv
//	u–n1–n2–v:  P_uv = (P_un1 ⊗ P_n1n2) ⊗ P_n2v
//
// where (A ⊗ B)[a][b] = min_k (A[a][k] + B[k][b]). Every contribution for
// the same (u, v) is summed, and summed into an existing u–v edge.
//
// Steps:
//  1. Resolve the set: dedupe, every id must be live (ErrNotFound).
//  2. Collect each removed node's arms: its incident edges, split into
//     outside neighbors and removed neighbors, potentials oriented n→other.
//  3. Reject a removed node with more than one removed neighbor
//     (ErrUnsupportedPath): it would need a path through three or more.
//  4. Compose every inducing path into a canonical (u<v) contribution.
//  5. Apply contributions in (u, v) order, then remove the nodes ascending.
//
// Steps 1–4 do not touch the store. If a write in step 5 fails, the
// contributions already applied are undone (merged potentials restored,
// induced edges removed). Node removal comes last and is not undone: a
// Store whose RemoveNode fails part-way leaves the earlier nodes removed.
// core.Graph never fails there.

package layered

import (
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/matrix"
)

// arm is one incident edge of an eliminated node seen from that node.
type arm struct {
	other int
	pot   *matrix.Dense // States(n) × States(other)
}

// elimination holds the arms of one eliminated node.
type elimination struct {
	outside []arm
	removed []arm
}

// pair is a canonical (u < v) node pair.
type pair struct{ u, v int }

// Marginalize removes nodes from the graph and replaces every path of
// length two (u–n–v) or three (u–n1–n2–v, n1 and n2 adjacent and both
// removed) through them by a direct u–v edge carrying the composed cost.
// Contributions to an existing u–v edge are summed into its potential;
// otherwise a new core.KindInduced edge is created. The removed nodes and
// all their incident edges are deleted; their ids are never reused.
//
// An empty set is a no-op; duplicates are ignored.
//
// Errors:
//   - ErrNotBuilt before AddNodes.
//   - ErrNotFound if an id is not a live node.
//   - ErrUnsupportedPath if a removed node has more than one removed
//     neighbor.
//
// On error nothing is mutated, except when the Store's RemoveNode fails
// after some nodes were already removed.
func (g *Layered) Marginalize(nodes []int) error {
	if err := g.requireBuilt("Marginalize"); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}

	// Stage 1: resolve.
	removed := make(map[int]bool, len(nodes))
	order := make([]int, 0, len(nodes))
	for _, id := range nodes {
		if removed[id] {
			continue
		}
		if _, err := g.store.Node(id); err != nil {
			return errors.Wrapf(ErrNotFound, "Marginalize: node %d: %v", id, err)
		}
		removed[id] = true
		order = append(order, id)
	}
	sort.Ints(order)

	// Stage 2: arms.
	elims := make(map[int]*elimination, len(order))
	for _, n := range order {
		el, err := g.collectArms(n, removed)
		if err != nil {
			return err
		}
		// Stage 3: path length cap.
		if len(el.removed) > 1 {
			return errors.Wrapf(ErrUnsupportedPath, "Marginalize: node %d has %d removed neighbors",
				n, len(el.removed))
		}
		elims[n] = el
	}

	// Stage 4: compose.
	contrib := make(map[pair]*matrix.Dense)
	add := func(u, v int, pot *matrix.Dense) error {
		key := pair{u, v}
		if acc, ok := contrib[key]; ok {
			return matrix.AddInPlace(acc, pot)
		}
		contrib[key] = pot

		return nil
	}
	for _, n := range order {
		el := elims[n]
		for i := 0; i < len(el.outside); i++ {
			for j := i + 1; j < len(el.outside); j++ {
				u, v := el.outside[i], el.outside[j]
				if u.other > v.other {
					u, v = v, u
				}
				pot, err := composeTwo(u.pot, v.pot)
				if err != nil {
					return errors.Wrapf(err, "Marginalize: path %d-%d-%d", u.other, n, v.other)
				}
				if err = add(u.other, v.other, pot); err != nil {
					return errors.Wrapf(err, "Marginalize: path %d-%d-%d", u.other, n, v.other)
				}
			}
		}
		if len(el.removed) == 0 || el.removed[0].other < n {
			// Each removed pair is composed once, from its lower id.
			continue
		}
		mid := el.removed[0]
		far := elims[mid.other]
		for _, u := range el.outside {
			for _, v := range far.outside {
				if u.other == v.other {
					continue
				}
				pot, err := composeThree(u.pot, mid.pot, v.pot)
				if err != nil {
					return errors.Wrapf(err, "Marginalize: path %d-%d-%d-%d", u.other, n, mid.other, v.other)
				}
				a, b := u.other, v.other
				if a > b {
					a, b = b, a
					if pot, err = matrix.Transpose(pot); err != nil {
						return err
					}
				}
				if err = add(a, b, pot); err != nil {
					return errors.Wrapf(err, "Marginalize: path %d-%d-%d-%d", u.other, n, mid.other, v.other)
				}
			}
		}
	}

	// Stage 5: apply.
	keys := make([]pair, 0, len(contrib))
	for k := range contrib {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].u != keys[j].u {
			return keys[i].u < keys[j].u
		}
		return keys[i].v < keys[j].v
	})
	var (
		induced, merged int
		undo            []undoStep
	)
	for _, k := range keys {
		pot := contrib[k]
		eid, ok := g.store.EdgeBetween(k.u, k.v)
		if ok {
			cur, err := g.store.Potential(eid)
			if err != nil {
				return g.undo(undo, errors.Wrapf(err, "Marginalize: edge %d", eid))
			}
			undo = append(undo, undoStep{eid: eid, prev: cur})
			if err = matrix.AddInPlace(pot, cur); err != nil {
				return g.undo(undo, errors.Wrapf(err, "Marginalize: edge %d", eid))
			}
			merged++
		} else {
			var err error
			if eid, err = g.store.AddEdge(k.u, k.v, core.KindInduced); err != nil {
				return g.undo(undo, errors.Wrapf(err, "Marginalize: induce %d-%d", k.u, k.v))
			}
			undo = append(undo, undoStep{eid: eid})
			induced++
		}
		if err := g.store.SetPotential(eid, pot); err != nil {
			return g.undo(undo, errors.Wrapf(err, "Marginalize: edge %d", eid))
		}
	}
	for _, n := range order {
		if err := g.store.RemoveNode(n); err != nil {
			return errors.Wrapf(err, "Marginalize: remove %d", n)
		}
	}

	g.logger.Debug("nodes marginalized",
		zap.Int("removed", len(order)),
		zap.Int("induced", induced),
		zap.Int("merged", merged))

	return nil
}

// undoStep reverts one applied contribution: prev restores a merged
// potential; a nil prev removes an induced edge.
type undoStep struct {
	eid  int
	prev *matrix.Dense
}

// undo reverts steps newest first. Failures are attached to cause.
func (g *Layered) undo(steps []undoStep, cause error) error {
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		var err error
		if s.prev != nil {
			err = g.store.SetPotential(s.eid, s.prev)
		} else {
			err = g.store.RemoveEdge(s.eid)
		}
		if err != nil {
			cause = errors.CombineErrors(cause, errors.Wrapf(err, "Marginalize: undo edge %d", s.eid))
		}
	}

	return cause
}

// collectArms reads the incident edges of n, orienting every potential
// n→other.
func (g *Layered) collectArms(n int, removed map[int]bool) (*elimination, error) {
	eids, err := g.store.Neighbors(n)
	if err != nil {
		return nil, errors.Wrapf(err, "Marginalize: node %d", n)
	}
	el := &elimination{}
	for _, eid := range eids {
		e, err := g.store.Edge(eid)
		if err != nil {
			return nil, errors.Wrapf(err, "Marginalize: edge %d", eid)
		}
		pot, err := g.store.Potential(eid)
		if err != nil {
			return nil, errors.Wrapf(err, "Marginalize: edge %d", eid)
		}
		other := e.To
		if e.To == n {
			other = e.From
			if pot, err = matrix.Transpose(pot); err != nil {
				return nil, err
			}
		}
		a := arm{other: other, pot: pot}
		if removed[other] {
			el.removed = append(el.removed, a)
		} else {
			el.outside = append(el.outside, a)
		}
	}

	return el, nil
}

// composeTwo returns P_uv for u–n–v given the arms n→u and n→v.
func composeTwo(nu, nv *matrix.Dense) (*matrix.Dense, error) {
	un, err := matrix.Transpose(nu)
	if err != nil {
		return nil, err
	}

	return matrix.MinPlus(un, nv)
}

// composeThree returns P_uv for u–n1–n2–v given the arms n1→u, n1→n2 and
// n2→v.
func composeThree(n1u, n1n2, n2v *matrix.Dense) (*matrix.Dense, error) {
	un1, err := matrix.Transpose(n1u)
	if err != nil {
		return nil, err
	}
	un2, err := matrix.MinPlus(un1, n1n2)
	if err != nil {
		return nil, err
	}

	return matrix.MinPlus(un2, n2v)
}
