package gridgraph

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Vectors is a multi-channel W×H grid: every cell holds a vector of
// exactly C values, stored contiguously in row-major cell order.
type Vectors struct {
	size     Size
	channels int
	data     []float64 // len == W*H*C; cell (x,y) at [(y*W+x)*C : +C]
}

// NewVectors allocates a zero-filled w×h grid with c channels.
// Returns ErrEmptyGrid if any dimension is not positive.
// Complexity: O(W×H×C).
func NewVectors(w, h, c int) (*Vectors, error) {
	if w <= 0 || h <= 0 || c <= 0 {
		return nil, errors.Wrapf(ErrEmptyGrid, "NewVectors(%d,%d,%d)", w, h, c)
	}

	return &Vectors{size: Size{Width: w, Height: h}, channels: c, data: make([]float64, w*h*c)}, nil
}

// NewVectorsFrom builds a grid from values[y][x] = cell vector.
// It deep-copies the input. All rows must have equal length, all cell
// vectors equal, non-zero length, and every value must be finite.
func NewVectorsFrom(values [][][]float64) (*Vectors, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	c := len(values[0][0])
	if c == 0 {
		return nil, errors.Wrap(ErrChannelMismatch, "NewVectorsFrom: zero-length cell vector")
	}
	for y, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for x, vec := range row {
			if len(vec) != c {
				return nil, errors.Wrapf(ErrChannelMismatch, "NewVectorsFrom: cell (%d,%d) has %d channels, want %d", x, y, len(vec), c)
			}
			if !finite(vec) {
				return nil, errors.Wrapf(ErrNonFinite, "NewVectorsFrom: cell (%d,%d)", x, y)
			}
		}
	}
	v, err := NewVectors(w, h, c)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			copy(v.cell(x, y), values[y][x])
		}
	}

	return v, nil
}

// Size returns the grid extent.
func (v *Vectors) Size() Size { return v.size }

// Channels returns the per-cell vector length.
func (v *Vectors) Channels() int { return v.channels }

// finite reports whether no value is NaN or ±Inf.
func finite(vals []float64) bool {
	for _, f := range vals {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}

func (v *Vectors) cell(x, y int) []float64 {
	off := v.size.Index(x, y) * v.channels
	return v.data[off : off+v.channels]
}

// Vector appends the vector of (x,y) to dst[:0]. Returns nil when out of bounds.
func (v *Vectors) Vector(x, y int, dst []float64) []float64 {
	if !v.size.InBounds(x, y) {
		return nil
	}

	return append(dst[:0], v.cell(x, y)...)
}

// At returns a copy of the vector at (x,y).
func (v *Vectors) At(x, y int) ([]float64, error) {
	if !v.size.InBounds(x, y) {
		return nil, errors.Wrapf(ErrOutOfBounds, "Vectors.At(%d,%d)", x, y)
	}

	return v.Vector(x, y, make([]float64, 0, v.channels)), nil
}

// Set copies vec into cell (x,y). len(vec) must equal Channels() and the
// values must be finite.
func (v *Vectors) Set(x, y int, vec []float64) error {
	if !v.size.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "Vectors.Set(%d,%d)", x, y)
	}
	if len(vec) != v.channels {
		return errors.Wrapf(ErrChannelMismatch, "Vectors.Set(%d,%d): len=%d, want %d", x, y, len(vec), v.channels)
	}
	if !finite(vec) {
		return errors.Wrapf(ErrNonFinite, "Vectors.Set(%d,%d)", x, y)
	}
	copy(v.cell(x, y), vec)

	return nil
}

// Split returns the grid as a Stack of single-channel grids, channel k of
// the Stack holding component k of every cell vector. Split and
// Stack.Merge are inverses.
func (v *Vectors) Split() Stack {
	out := make(Stack, v.channels)
	n := v.size.Area()
	for k := 0; k < v.channels; k++ {
		ch := &Channel{size: v.size, data: make([]float64, n)}
		for i := 0; i < n; i++ {
			ch.data[i] = v.data[i*v.channels+k]
		}
		out[k] = ch
	}

	return out
}
