// SPDX-License-Identifier: MIT

package layered

import "github.com/cockroachdb/errors"

var (
	// ErrNotBuilt indicates an operation that needs the topology was called
	// before AddNodes.
	ErrNotBuilt = errors.New("layered: topology not built, call AddNodes first")

	// ErrAlreadyBuilt indicates a second AddNodes call.
	ErrAlreadyBuilt = errors.New("layered: topology already built")

	// ErrInvalidArgument indicates a malformed argument or configuration.
	ErrInvalidArgument = errors.New("layered: invalid argument")

	// ErrDimensionMismatch indicates a grid, channel or potential shape that
	// does not match the graph.
	ErrDimensionMismatch = errors.New("layered: dimension mismatch")

	// ErrUnsupportedPath indicates a marginalization that would induce a path
	// through more than two eliminated nodes.
	ErrUnsupportedPath = errors.New("layered: unsupported inducing path")

	// ErrNotFound indicates a node id that does not name a live node.
	ErrNotFound = errors.New("layered: node not found")
)
