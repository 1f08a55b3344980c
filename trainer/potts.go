// SPDX-License-Identifier: MIT

package trainer

import "github.com/katalvlaran/lvcrf/matrix"

// Potts is the plain Potts model over States labels: agreeing labels cost
// 0, disagreeing labels cost beta. Features are ignored.
type Potts struct {
	States int
}

// Potential returns the States×States Potts matrix for params [beta].
func (p Potts) Potential(a, b []float64, params []float64) (*matrix.Dense, error) {
	return p.PotentialSized(p.States, p.States, a, b, params)
}

// PotentialSized returns a rows×cols Potts matrix for params [beta].
func (p Potts) PotentialSized(rows, cols int, _, _ []float64, params []float64) (*matrix.Dense, error) {
	if err := checkParams("Potts", params, PottsParams); err != nil {
		return nil, err
	}

	return pottsMatrix(rows, cols, params[0])
}

// LinkPotts is the Potts model for inter-layer links, where the two
// endpoints may carry different label sets. Label i of the lower layer
// agrees with label i of the upper layer; every other pair costs beta.
type LinkPotts struct {
	BaseStates  int
	OtherStates int
}

// Potential returns the BaseStates×OtherStates matrix for params [beta].
func (l LinkPotts) Potential(a, b []float64, params []float64) (*matrix.Dense, error) {
	return l.PotentialSized(l.BaseStates, l.OtherStates, a, b, params)
}

// PotentialSized returns a rows×cols link matrix for params [beta].
func (l LinkPotts) PotentialSized(rows, cols int, _, _ []float64, params []float64) (*matrix.Dense, error) {
	if err := checkParams("LinkPotts", params, PottsParams); err != nil {
		return nil, err
	}

	return pottsMatrix(rows, cols, params[0])
}
