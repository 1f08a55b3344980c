// Package matrix provides the dense potential matrices used by the layered
// pairwise graph: one matrix per edge, rows indexed by the states of the
// edge's source node and columns by the states of its destination node.
//
// What:
//
//   - Dense: row-major float64 storage with bounds-checked At/Set.
//   - Element-wise kernels: Add, AddInPlace, Scale, ScaleInPlace, Transpose.
//   - MinPlus: the tropical (min,+) product used to compose edge potentials
//     along an eliminated path, i.e. C[i][j] = min_k A[i][k] + B[k][j].
//   - Validators: ValidateNotNil, ValidateSameShape, ValidateShape,
//     ValidateNonNegative, shared by every package that stores potentials.
//
// Numeric policy:
//
//   - Potentials are non-negative costs (negative-log compatibilities):
//     lower is better. NaN and ±Inf are rejected on Set.
//
// Errors:
//
//   - ErrInvalidDimensions: rows or cols not positive.
//   - ErrOutOfRange:        index outside the matrix.
//   - ErrDimensionMismatch: incompatible operand shapes.
//   - ErrNilMatrix:         nil operand.
//   - ErrNaNInf:            non-finite value.
//   - ErrNegative:          negative entry where a potential was required.
//
// Complexity:
//
//   - At/Set O(1); Add/Scale/Clone O(r·c); MinPlus O(r·k·c).
package matrix
