// SPDX-License-Identifier: MIT
// Package matrix provides the element-wise and (min,+) kernels used to
// scale, merge and compose edge potentials. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.

package matrix

import "math"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd          = "Add"
	opAddInPlace   = "AddInPlace"
	opScale        = "Scale"
	opScaleInPlace = "ScaleInPlace"
	opTranspose    = "Transpose"
	opMinPlus      = "MinPlus"
)

// Add returns a new Dense containing the element-wise sum of a and b.
// Stage 1 (Validate): nil-checks and shape match.
// Stage 2 (Prepare): allocate result Dense.
// Stage 3 (Execute): fast-path for *Dense or fallback to interface.
// Complexity: O(r·c) time and memory.
func Add(a, b Matrix) (*Dense, error) {
	// Stage 1: Validate inputs
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	// Stage 2: Allocate result as a copy of a
	res := toDense(a)

	// Stage 3: accumulate b
	if err := AddInPlace(res, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	return res, nil
}

// AddInPlace accumulates src into dst (dst += src).
// This is how an induced path contribution is merged into an already
// existing edge potential.
// Complexity: O(r·c), no allocation.
func AddInPlace(dst *Dense, src Matrix) error {
	if dst == nil {
		return matrixErrorf(opAddInPlace, ErrNilMatrix)
	}
	if err := ValidateNotNil(src); err != nil {
		return matrixErrorf(opAddInPlace, err)
	}
	if err := ValidateSameShape(dst, src); err != nil {
		return matrixErrorf(opAddInPlace, err)
	}

	// Fast-path: flat slices
	if ds, ok := src.(*Dense); ok {
		for idx := range dst.data {
			dst.data[idx] += ds.data[idx]
		}

		return nil
	}

	// Fallback: generic interface loop
	var (
		i, j int
		v    float64
	)
	for i = 0; i < dst.r; i++ {
		for j = 0; j < dst.c; j++ {
			v, _ = src.At(i, j) // safe: same shape
			dst.data[i*dst.c+j] += v
		}
	}

	return nil
}

// Scale returns a new Dense where each element of m is multiplied by alpha.
// Complexity: O(r·c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := toDense(m)
	if err := ScaleInPlace(res, alpha); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	return res, nil
}

// ScaleInPlace multiplies every entry of m by alpha.
// alpha must be finite.
func ScaleInPlace(m *Dense, alpha float64) error {
	if m == nil {
		return matrixErrorf(opScaleInPlace, ErrNilMatrix)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opScaleInPlace, ErrNaNInf)
	}
	for idx := range m.data {
		m.data[idx] *= alpha
	}

	return nil
}

// Transpose returns mᵀ as a new Dense.
// Edge potentials are stored From→To; reading an edge from its To side
// requires the transposed view.
// Complexity: O(r·c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src := toDense(m)
	res := &Dense{r: src.c, c: src.r, data: make([]float64, len(src.data))}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			res.data[j*res.c+i] = src.data[i*src.c+j]
		}
	}

	return res, nil
}

// MinPlus returns the tropical product C = A ⊗ B with
//
//	C[i][j] = min_k ( A[i][k] + B[k][j] ).
//
// With potentials read as negative-log costs this is the cost of the best
// two-step path i→k→j, i.e. the composition of two edges that share the
// eliminated middle node. Same relaxation as a Floyd–Warshall step.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: O(r·k·c) time, O(r·c) memory.
func MinPlus(a, b Matrix) (*Dense, error) {
	// Stage 1: Validate
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMinPlus, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMinPlus, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMinPlus, ErrDimensionMismatch)
	}

	// Stage 2: Prepare flat operands and result
	da, db := toDense(a), toDense(b)
	rows, inner, cols := da.r, da.c, db.c
	res := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}

	// Stage 3: Execute with fixed i→j→k order for reproducibility
	var (
		i, j, k   int
		best, cur float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			best = math.Inf(1)
			for k = 0; k < inner; k++ {
				cur = da.data[i*inner+k] + db.data[k*cols+j]
				if cur < best {
					best = cur
				}
			}
			res.data[i*cols+j] = best
		}
	}

	return res, nil
}

// toDense returns a private *Dense copy of m regardless of its concrete type.
func toDense(m Matrix) *Dense {
	if d, ok := m.(*Dense); ok {
		return d.CloneDense()
	}
	r, c := m.Rows(), m.Cols()
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, _ = m.At(i, j)
			out.data[i*c+j] = v
		}
	}

	return out
}
