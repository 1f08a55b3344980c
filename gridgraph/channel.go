package gridgraph

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Channel is a single-channel W×H grid of scalars (one image plane).
type Channel struct {
	size Size
	data []float64 // row-major, len == W*H
}

// NewChannel allocates a zero-filled w×h channel.
func NewChannel(w, h int) (*Channel, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrEmptyGrid, "NewChannel(%d,%d)", w, h)
	}

	return &Channel{size: Size{Width: w, Height: h}, data: make([]float64, w*h)}, nil
}

// NewChannelFrom deep-copies values[y][x] into a new Channel.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrNonFinite for NaN or ±Inf.
// Complexity: O(W×H) time and memory.
func NewChannelFrom(values [][]float64) (*Channel, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for y, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		if !finite(row) {
			return nil, errors.Wrapf(ErrNonFinite, "NewChannelFrom: row %d", y)
		}
	}
	ch := &Channel{size: Size{Width: w, Height: h}, data: make([]float64, 0, w*h)}
	for _, row := range values {
		ch.data = append(ch.data, row...)
	}

	return ch, nil
}

// Size returns the channel extent.
func (c *Channel) Size() Size { return c.size }

// At returns the scalar at (x,y).
func (c *Channel) At(x, y int) (float64, error) {
	if !c.size.InBounds(x, y) {
		return 0, errors.Wrapf(ErrOutOfBounds, "Channel.At(%d,%d)", x, y)
	}

	return c.data[c.size.Index(x, y)], nil
}

// Set stores f at (x,y). f must be finite.
func (c *Channel) Set(x, y int, f float64) error {
	if !c.size.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "Channel.Set(%d,%d)", x, y)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Wrapf(ErrNonFinite, "Channel.Set(%d,%d)", x, y)
	}
	c.data[c.size.Index(x, y)] = f

	return nil
}

// Stack is an ordered sequence of equally-sized single-channel grids.
// The vector of cell (x,y) is [s[0](x,y), s[1](x,y), ...].
type Stack []*Channel

// Validate checks the stack is non-empty, has no nil channel and that all
// channels share one size.
func (s Stack) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(ErrEmptyGrid, "Stack: no channels")
	}
	for i, ch := range s {
		if ch == nil {
			return errors.Wrapf(ErrChannelMismatch, "Stack: channel %d is nil", i)
		}
		if ch.size != s[0].size {
			return errors.Wrapf(ErrChannelMismatch, "Stack: channel %d is %dx%d, want %dx%d",
				i, ch.size.Width, ch.size.Height, s[0].size.Width, s[0].size.Height)
		}
	}

	return nil
}

// Size returns the size of the first channel; zero Size for an empty stack.
func (s Stack) Size() Size {
	if len(s) == 0 || s[0] == nil {
		return Size{}
	}

	return s[0].size
}

// Channels returns the number of stacked channels.
func (s Stack) Channels() int { return len(s) }

// Vector appends the concatenated values at (x,y) to dst[:0].
// Assumes a validated stack.
func (s Stack) Vector(x, y int, dst []float64) []float64 {
	size := s.Size()
	if !size.InBounds(x, y) {
		return nil
	}
	idx := size.Index(x, y)
	dst = dst[:0]
	for _, ch := range s {
		dst = append(dst, ch.data[idx])
	}

	return dst
}

// Merge packs the stack into a multi-channel Vectors grid.
func (s Stack) Merge() (*Vectors, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	size := s.Size()
	v, err := NewVectors(size.Width, size.Height, len(s))
	if err != nil {
		return nil, err
	}
	n := size.Area()
	for i := 0; i < n; i++ {
		for k, ch := range s {
			v.data[i*len(s)+k] = ch.data[i]
		}
	}

	return v, nil
}
