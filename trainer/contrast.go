// SPDX-License-Identifier: MIT

package trainer

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvcrf/matrix"
)

// ContrastPotts is the contrast-sensitive Potts model: the cost of a label
// change between two pixels decays with the Euclidean distance of their
// feature vectors,
//
//	cost = beta · exp(-‖a-b‖² / (2σ²))
//
// so boundaries are cheap where the image changes sharply.
type ContrastPotts struct {
	States int
}

// Potential returns the States×States matrix for params [beta, sigma].
func (c ContrastPotts) Potential(a, b []float64, params []float64) (*matrix.Dense, error) {
	return c.PotentialSized(c.States, c.States, a, b, params)
}

// PotentialSized returns a rows×cols matrix for params [beta, sigma].
// sigma must be strictly positive.
func (c ContrastPotts) PotentialSized(rows, cols int, a, b []float64, params []float64) (*matrix.Dense, error) {
	if err := checkParams("ContrastPotts", params, ContrastParams); err != nil {
		return nil, err
	}
	beta, sigma := params[0], params[1]
	if sigma == 0 {
		return nil, errors.Wrap(ErrInvalidParameters, "ContrastPotts: sigma must be > 0")
	}
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrFeatureMismatch, "ContrastPotts: len(a)=%d, len(b)=%d", len(a), len(b))
	}

	var d float64
	if len(a) > 0 {
		d = floats.Distance(a, b, 2)
	}

	return pottsMatrix(rows, cols, beta*math.Exp(-d*d/(2*sigma*sigma)))
}
