// SPDX-License-Identifier: MIT

// Package trainer provides the potential models that turn a pair of
// per-pixel feature vectors into a pairwise potential matrix.
//
// A Model is called once per edge by layered.FillEdges with the feature
// vectors of the edge's two endpoints and a caller-supplied parameter
// slice. Potentials are costs: 0 on agreeing labels, a non-negative
// penalty elsewhere.
//
// Shipped models:
//
//   - Potts:         params [beta]; beta on every off-diagonal cell.
//   - ContrastPotts: params [beta, sigma]; beta·exp(-‖a-b‖²/(2σ²)) off the
//     diagonal, so strong feature edges are cheap to cut.
//   - LinkPotts:     params [beta]; rectangular Potts for inter-layer links.
//   - ModelFunc:     adapter for plain functions.
//
// Models whose shape follows the endpoint state counts also implement
// Sized; FillEdges prefers PotentialSized when it is available.
//
// Errors:
//
//   - ErrInvalidParameters: wrong params length, or a parameter out of range.
//   - ErrFeatureMismatch:   feature vectors of different lengths.
package trainer
