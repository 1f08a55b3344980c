// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/sign checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.

package matrix

import (
	"math"

	"github.com/cockroachdb/errors"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return errors.Wrapf(err, "%s", tag)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed-nil *Dense stored in the interface is treated as nil too.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateShape ensures m is non-nil and exactly rows×cols.
// This is the check every potential write goes through: an edge between
// nodes with s1 and s2 states must carry an s1×s2 matrix.
func ValidateShape(m Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != rows || m.Cols() != cols {
		return errors.Wrapf(ErrDimensionMismatch, "ValidateShape: got %dx%d, want %dx%d",
			m.Rows(), m.Cols(), rows, cols)
	}

	return nil
}

// ValidateNonNegative ensures every entry is finite and ≥ 0.
// Complexity: O(r·c).
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			if err := checkPotentialValue(v); err != nil {
				return denseErrorf("ValidateNonNegative", idx/d.c, idx%d.c, err)
			}
		}

		return nil
	}
	var v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			if err := checkPotentialValue(v); err != nil {
				return denseErrorf("ValidateNonNegative", i, j, err)
			}
		}
	}

	return nil
}

// ValidateVector ensures x has length n with finite, non-negative entries.
// Used for unary potentials.
func ValidateVector(x []float64, n int) error {
	if len(x) != n {
		return errors.Wrapf(ErrDimensionMismatch, "ValidateVector: len=%d, want %d", len(x), n)
	}
	for i, v := range x {
		if err := checkPotentialValue(v); err != nil {
			return errors.Wrapf(err, "ValidateVector: index %d", i)
		}
	}

	return nil
}

func checkPotentialValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNaNInf
	}
	if v < 0 {
		return ErrNegative
	}

	return nil
}
