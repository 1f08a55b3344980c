// SPDX-License-Identifier: MIT
//
// File: model.go
// Role: Model capability, optional Sized extension, ModelFunc adapter and
// shared parameter checks.

package trainer

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvcrf/matrix"
)

// Parameter counts expected by the shipped models.
const (
	PottsParams    = 1 // [beta]
	ContrastParams = 2 // [beta, sigma]
)

// Model computes the pairwise potential of one edge from the feature
// vectors a and b of its endpoints. Implementations must be safe for
// concurrent use: FillEdges calls them from several goroutines. a and b are
// scratch buffers valid only for the duration of the call.
type Model interface {
	Potential(a, b []float64, params []float64) (*matrix.Dense, error)
}

// Sized is implemented by models that can emit a potential of any
// requested shape. rows and cols are the state counts of the edge's
// From and To nodes.
type Sized interface {
	Model
	PotentialSized(rows, cols int, a, b []float64, params []float64) (*matrix.Dense, error)
}

// ModelFunc adapts a plain function to Model.
type ModelFunc func(a, b []float64, params []float64) (*matrix.Dense, error)

// Potential calls f(a, b, params).
func (f ModelFunc) Potential(a, b []float64, params []float64) (*matrix.Dense, error) {
	return f(a, b, params)
}

// Compile-time checks.
var (
	_ Sized = Potts{}
	_ Sized = ContrastPotts{}
	_ Sized = LinkPotts{}
	_ Model = ModelFunc(nil)
)

// checkParams verifies len(params) == want and every value is finite and
// non-negative.
func checkParams(model string, params []float64, want int) error {
	if len(params) != want {
		return errors.Wrapf(ErrInvalidParameters, "%s: got %d params, want %d", model, len(params), want)
	}
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return errors.Wrapf(ErrInvalidParameters, "%s: params[%d]=%v", model, i, p)
		}
	}

	return nil
}

// pottsMatrix returns a rows×cols matrix with 0 where i == j and cost
// elsewhere.
func pottsMatrix(rows, cols int, cost float64) (*matrix.Dense, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(ErrBadStates, "%dx%d", rows, cols)
	}
	m, err := matrix.NewFilled(rows, cols, cost)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows && i < cols; i++ {
		if err = m.Set(i, i, 0); err != nil {
			return nil, err
		}
	}

	return m, nil
}
