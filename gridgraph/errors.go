package gridgraph

import "github.com/cockroachdb/errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrChannelMismatch indicates cell vectors or stacked channels disagree in shape.
	ErrChannelMismatch = errors.New("gridgraph: channel count or channel size mismatch")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: coordinate out of bounds")
	// ErrNonFinite indicates a NaN or ±Inf cell value.
	ErrNonFinite = errors.New("gridgraph: cell values must be finite")
)
