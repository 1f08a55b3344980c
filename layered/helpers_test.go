// SPDX-License-Identifier: MIT

package layered_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/gridgraph"
	"github.com/katalvlaran/lvcrf/layered"
	"github.com/katalvlaran/lvcrf/matrix"
)

// config returns a validated config with the given shape and unit weights.
func config(layers int, typ layered.GraphType, base, other int) layered.Config {
	cfg := layered.DefaultConfig()
	cfg.Layers = layers
	cfg.Type = typ
	cfg.BaseStates = base
	cfg.OtherStates = other

	return cfg
}

// build returns a Layered over a fresh core.Graph with AddNodes(w, h) done.
func build(t *testing.T, cfg layered.Config, w, h int, opts ...layered.Option) (*layered.Layered, *core.Graph) {
	t.Helper()
	store := core.NewGraph()
	opts = append([]layered.Option{layered.WithLogger(zaptest.NewLogger(t))}, opts...)
	g, err := layered.New(store, cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, g.AddNodes(w, h))

	return g, store
}

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

func mustPotential(t *testing.T, store *core.Graph, eid int) *matrix.Dense {
	t.Helper()
	pot, err := store.Potential(eid)
	require.NoError(t, err)

	return pot
}

func mustEdgeBetween(t *testing.T, store *core.Graph, u, v int) int {
	t.Helper()
	eid, ok := store.EdgeBetween(u, v)
	require.True(t, ok, "no edge %d-%d", u, v)

	return eid
}

// rows flattens a matrix for cmp-friendly comparison.
func rows(m *matrix.Dense) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = append([]float64(nil), m.RawRow(i)...)
	}

	return out
}

// rampFeatures returns a w×h grid with c channels where channel k of cell
// (x,y) is x + 2y + 0.5k.
func rampFeatures(t *testing.T, w, h, c int) *gridgraph.Vectors {
	t.Helper()
	v, err := gridgraph.NewVectors(w, h, c)
	require.NoError(t, err)
	vec := make([]float64, c)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for k := range vec {
				vec[k] = float64(x) + 2*float64(y) + 0.5*float64(k)
			}
			require.NoError(t, v.Set(x, y, vec))
		}
	}

	return v
}

// snapshot returns every live edge's potential keyed by edge id.
func snapshot(t *testing.T, store *core.Graph) map[int][][]float64 {
	t.Helper()
	out := make(map[int][][]float64)
	for _, eid := range store.Edges() {
		out[eid] = rows(mustPotential(t, store, eid))
	}

	return out
}

var errTransient = errors.New("transient store failure")

// failingStore is a core.Graph whose AddEdge or SetPotential fails once, on
// the n-th call after arm.
type failingStore struct {
	*core.Graph
	calls  map[string]int
	failOn map[string]int
}

func newFailingStore() *failingStore {
	return &failingStore{Graph: core.NewGraph(), calls: map[string]int{}, failOn: map[string]int{}}
}

func (s *failingStore) arm(op string, n int) {
	s.calls[op] = 0
	s.failOn[op] = n
}

func (s *failingStore) hit(op string) bool {
	s.calls[op]++

	return s.calls[op] == s.failOn[op]
}

func (s *failingStore) AddEdge(from, to int, kind core.EdgeKind) (int, error) {
	if s.hit("AddEdge") {
		return 0, errTransient
	}

	return s.Graph.AddEdge(from, to, kind)
}

func (s *failingStore) SetPotential(eid int, pot *matrix.Dense) error {
	if s.hit("SetPotential") {
		return errTransient
	}

	return s.Graph.SetPotential(eid, pot)
}
