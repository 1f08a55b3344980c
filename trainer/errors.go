// SPDX-License-Identifier: MIT

package trainer

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidParameters indicates params of the wrong length or value.
	ErrInvalidParameters = errors.New("trainer: invalid parameters")

	// ErrFeatureMismatch indicates endpoint feature vectors of different lengths.
	ErrFeatureMismatch = errors.New("trainer: feature vector length mismatch")

	// ErrBadStates indicates a non-positive state count.
	ErrBadStates = errors.New("trainer: state count must be positive")
)
