package gridgraph

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Size is the extent of a grid in cells. Width and Height are both > 0 for
// any grid built by this package.
type Size struct {
	Width, Height int
}

// Source is a read-only W×H grid of equal-length vectors.
//
// Vector appends the vector of cell (x,y) to dst[:0] and returns it, so hot
// loops can reuse one buffer per worker. Callers must check bounds with
// Size().InBounds first; out-of-range coordinates return nil.
type Source interface {
	Size() Size
	Channels() int
	Vector(x, y int, dst []float64) []float64
}

// Compile-time checks: both feature shapes satisfy Source.
var (
	_ Source = (*Vectors)(nil)
	_ Source = Stack(nil)
)
