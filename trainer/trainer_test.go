// SPDX-License-Identifier: MIT
// Package trainer_test verifies the shipped potential models.
package trainer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcrf/matrix"
	"github.com/katalvlaran/lvcrf/trainer"
)

func at(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestPotts(t *testing.T) {
	m, err := trainer.Potts{States: 3}.Potential(nil, nil, []float64{2})
	require.NoError(t, err)
	want, err := matrix.FromRows([][]float64{{0, 2, 2}, {2, 0, 2}, {2, 2, 0}})
	require.NoError(t, err)
	assert.True(t, m.Equal(want), "got\n%s", m)
}

func TestPotts_Errors(t *testing.T) {
	cases := []struct {
		name   string
		model  trainer.Potts
		params []float64
		err    error
	}{
		{"no params", trainer.Potts{States: 2}, nil, trainer.ErrInvalidParameters},
		{"too many", trainer.Potts{States: 2}, []float64{1, 2}, trainer.ErrInvalidParameters},
		{"negative", trainer.Potts{States: 2}, []float64{-1}, trainer.ErrInvalidParameters},
		{"nan", trainer.Potts{States: 2}, []float64{math.NaN()}, trainer.ErrInvalidParameters},
		{"zero states", trainer.Potts{}, []float64{1}, trainer.ErrBadStates},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.model.Potential(nil, nil, tc.params)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLinkPotts_Rectangular(t *testing.T) {
	m, err := trainer.LinkPotts{BaseStates: 3, OtherStates: 2}.Potential(nil, nil, []float64{1.5})
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.0, at(t, m, 1, 1))
	assert.Equal(t, 1.5, at(t, m, 2, 0))
	assert.Equal(t, 1.5, at(t, m, 2, 1))

	sq, err := trainer.LinkPotts{BaseStates: 3, OtherStates: 2}.PotentialSized(2, 2, nil, nil, []float64{1})
	require.NoError(t, err)
	r, c = sq.Shape()
	assert.Equal(t, [2]int{2, 2}, [2]int{r, c})
}

func TestContrastPotts(t *testing.T) {
	model := trainer.ContrastPotts{States: 2}

	// Identical features: full beta.
	m, err := model.Potential([]float64{1, 2}, []float64{1, 2}, []float64{4, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, at(t, m, 0, 0))
	assert.Equal(t, 4.0, at(t, m, 0, 1))

	// ‖a-b‖ = 5, sigma = 5 → beta·e^{-1/2}.
	m, err = model.Potential([]float64{0, 0}, []float64{3, 4}, []float64{4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 4*math.Exp(-0.5), at(t, m, 1, 0), 1e-12)
	assert.Equal(t, 0.0, at(t, m, 1, 1))
}

func TestContrastPotts_Errors(t *testing.T) {
	model := trainer.ContrastPotts{States: 2}

	_, err := model.Potential([]float64{1}, []float64{1}, []float64{1})
	require.ErrorIs(t, err, trainer.ErrInvalidParameters)

	_, err = model.Potential([]float64{1}, []float64{1}, []float64{1, 0})
	require.ErrorIs(t, err, trainer.ErrInvalidParameters)

	_, err = model.Potential([]float64{1}, []float64{1, 2}, []float64{1, 1})
	require.ErrorIs(t, err, trainer.ErrFeatureMismatch)
}

func TestModelFunc(t *testing.T) {
	var calls int
	f := trainer.ModelFunc(func(a, b []float64, params []float64) (*matrix.Dense, error) {
		calls++
		return matrix.NewFilled(1, 1, a[0]+b[0]+params[0])
	})

	m, err := f.Potential([]float64{1}, []float64{2}, []float64{3})
	require.NoError(t, err)
	assert.Equal(t, 6.0, at(t, m, 0, 0))
	assert.Equal(t, 1, calls)
}
