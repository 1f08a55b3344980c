// SPDX-License-Identifier: MIT

package layered_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/gridgraph"
	"github.com/katalvlaran/lvcrf/layered"
	"github.com/katalvlaran/lvcrf/matrix"
	"github.com/katalvlaran/lvcrf/trainer"
)

func TestSetNodes_RoundTrip(t *testing.T) {
	const w, h = 3, 2
	g, store := build(t, config(3, layered.TypeGrid|layered.TypeLink, 2, 3), w, h)
	base := rampFeatures(t, w, h, 2)
	other := rampFeatures(t, w, h, 3)

	require.NoError(t, g.SetNodes(base, other))

	for layer := 0; layer < 3; layer++ {
		src := base
		if layer > 0 {
			src = other
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				id, err := g.NodeID(layer, x, y)
				require.NoError(t, err)
				got, err := store.Unary(id)
				require.NoError(t, err)
				want, err := src.At(x, y)
				require.NoError(t, err)
				assert.Equal(t, want, got, "layer %d cell (%d,%d)", layer, x, y)
			}
		}
	}
}

func TestSetNodes_SingleLayerIgnoresOther(t *testing.T) {
	g, store := build(t, config(1, layered.TypeGrid, 2, 7), 2, 2)

	require.NoError(t, g.SetNodes(rampFeatures(t, 2, 2, 2), nil))
	got, err := store.Unary(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3.5}, got)
}

func TestSetNodes_Errors(t *testing.T) {
	g, store := build(t, config(2, layered.TypeGrid, 2, 3), 2, 2)

	cases := []struct {
		name        string
		base, other *gridgraph.Vectors
		err         error
	}{
		{"missing other", rampFeatures(t, 2, 2, 2), nil, layered.ErrInvalidArgument},
		{"base size", rampFeatures(t, 3, 2, 2), rampFeatures(t, 2, 2, 3), layered.ErrDimensionMismatch},
		{"other size", rampFeatures(t, 2, 2, 2), rampFeatures(t, 2, 1, 3), layered.ErrDimensionMismatch},
		{"base states", rampFeatures(t, 2, 2, 3), rampFeatures(t, 2, 2, 3), layered.ErrDimensionMismatch},
		{"other states", rampFeatures(t, 2, 2, 2), rampFeatures(t, 2, 2, 2), layered.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, g.SetNodes(tc.base, tc.other), tc.err)
		})
	}

	// A negative score in the last cell aborts before any write.
	other := rampFeatures(t, 2, 2, 3)
	require.NoError(t, other.Set(1, 1, []float64{1, -1, 1}))
	require.ErrorIs(t, g.SetNodes(rampFeatures(t, 2, 2, 2), other), layered.ErrInvalidArgument)
	for _, id := range store.Nodes() {
		u, err := store.Unary(id)
		require.NoError(t, err)
		for _, v := range u {
			assert.Zero(t, v, "node %d was written", id)
		}
	}
}

func TestFillEdges_Weights(t *testing.T) {
	g, store := build(t, config(2, layered.TypeGrid|layered.TypeLink, 2, 3), 2, 2)
	features := rampFeatures(t, 2, 2, 1)

	err := g.FillEdges(trainer.Potts{States: 2}, trainer.LinkPotts{BaseStates: 2, OtherStates: 3},
		features, []float64{1}, layered.WithEdgeWeight(2), layered.WithLinkWeight(0.5))
	require.NoError(t, err)

	for _, eid := range store.Edges() {
		e, err := store.Edge(eid)
		require.NoError(t, err)
		from, _ := store.Node(e.From)
		to, _ := store.Node(e.To)
		pot := mustPotential(t, store, eid)
		r, c := pot.Shape()
		require.Equal(t, [2]int{from.States, to.States}, [2]int{r, c})

		want := 2.0
		if e.Kind == core.KindLink {
			want = 0.5
		}
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v, _ := pot.At(i, j)
				if i == j {
					assert.Zero(t, v)
				} else {
					assert.Equal(t, want, v, "edge %d (%s) [%d][%d]", eid, e.Kind, i, j)
				}
			}
		}
	}
}

func TestFillEdges_VectorsAndStackAreIdentical(t *testing.T) {
	const w, h = 4, 3
	cfg := config(2, layered.TypeGrid|layered.TypeDiag|layered.TypeLink, 3, 3)
	features := rampFeatures(t, w, h, 3)
	edge := trainer.ContrastPotts{States: 3}
	link := trainer.ContrastPotts{States: 3}
	params := []float64{2, 1.5}

	g1, s1 := build(t, cfg, w, h)
	require.NoError(t, g1.FillEdges(edge, link, features, params))

	g2, s2 := build(t, cfg, w, h)
	stack := features.Split()
	require.NoError(t, g2.FillEdgesStack(edge, link, stack, params))

	if diff := cmp.Diff(snapshot(t, s1), snapshot(t, s2)); diff != "" {
		t.Fatalf("potentials differ (-vectors +stack):\n%s", diff)
	}
}

func TestFillEdges_WorkerCountDoesNotChangeResult(t *testing.T) {
	const w, h = 9, 7
	cfg := config(3, layered.TypeGrid|layered.TypeDiag|layered.TypeLink, 2, 2)
	features := rampFeatures(t, w, h, 2)

	g1, s1 := build(t, cfg, w, h, layered.WithWorkers(1))
	require.NoError(t, g1.FillEdges(trainer.ContrastPotts{}, trainer.ContrastPotts{}, features, []float64{1, 2}))

	g2, s2 := build(t, cfg, w, h, layered.WithWorkers(8))
	require.NoError(t, g2.FillEdges(trainer.ContrastPotts{}, trainer.ContrastPotts{}, features, []float64{1, 2}))

	if diff := cmp.Diff(snapshot(t, s1), snapshot(t, s2)); diff != "" {
		t.Fatalf("potentials differ (-1 worker +8 workers):\n%s", diff)
	}
}

func TestFillEdges_AllOrNothing(t *testing.T) {
	g, store := build(t, config(2, layered.TypeGrid|layered.TypeLink, 2, 2), 3, 3)
	features := rampFeatures(t, 3, 3, 1)
	before := snapshot(t, store)

	// Missing link model while links exist.
	err := g.FillEdges(trainer.Potts{}, nil, features, []float64{1})
	require.ErrorIs(t, err, layered.ErrInvalidArgument)

	// Wrong params length.
	err = g.FillEdges(trainer.Potts{}, trainer.Potts{}, features, []float64{1, 2})
	require.ErrorIs(t, err, trainer.ErrInvalidParameters)

	// Feature grid of the wrong size.
	err = g.FillEdges(trainer.Potts{}, trainer.Potts{}, rampFeatures(t, 2, 3, 1), []float64{1})
	require.ErrorIs(t, err, layered.ErrDimensionMismatch)

	// One edge gets a badly shaped result.
	bad := trainer.ModelFunc(func(a, b, params []float64) (*matrix.Dense, error) {
		if a[0] == 4 && b[0] == 5 {
			return matrix.NewDense(1, 1)
		}
		return matrix.NewFilled(2, 2, 1)
	})
	err = g.FillEdges(bad, trainer.Potts{}, features, []float64{1}, layered.WithEdgeWeight(1))
	require.ErrorIs(t, err, layered.ErrDimensionMismatch)

	assert.Equal(t, before, snapshot(t, store))

	err = g.FillEdges(nil, nil, nil, nil)
	require.ErrorIs(t, err, layered.ErrInvalidArgument)
	err = g.FillEdgesStack(nil, nil, nil, nil)
	require.ErrorIs(t, err, layered.ErrInvalidArgument)
}

func TestFillEdges_StackValidation(t *testing.T) {
	g, _ := build(t, config(1, layered.TypeGrid, 2, 2), 2, 2)
	a, err := gridgraph.NewChannel(2, 2)
	require.NoError(t, err)
	b, err := gridgraph.NewChannel(3, 2)
	require.NoError(t, err)

	err = g.FillEdgesStack(trainer.Potts{}, nil, []*gridgraph.Channel{a, b}, []float64{1})
	require.ErrorIs(t, err, layered.ErrDimensionMismatch)
}

func TestFillEdges_SkipsInducedEdges(t *testing.T) {
	g, store := build(t, config(1, layered.TypeGrid, 2, 2), 3, 1)
	require.NoError(t, store.SetPotential(0, mustDense(t, [][]float64{{0, 1}, {1, 0}})))
	require.NoError(t, store.SetPotential(1, mustDense(t, [][]float64{{0, 1}, {1, 0}})))
	require.NoError(t, g.Marginalize([]int{1}))
	induced := mustEdgeBetween(t, store, 0, 2)
	before := rows(mustPotential(t, store, induced))

	// No model for within edges is needed: none are left.
	require.NoError(t, g.FillEdges(nil, nil, rampFeatures(t, 3, 1, 1), []float64{5}))
	assert.Equal(t, before, rows(mustPotential(t, store, induced)))
}
