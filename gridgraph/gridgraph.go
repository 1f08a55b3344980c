package gridgraph

// Area returns Width×Height.
// Complexity: O(1).
func (s Size) Area() int { return s.Width * s.Height }

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (s Size) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// Index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (s Size) Index(x, y int) int {
	return y*s.Width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (s Size) Coordinate(idx int) (x, y int) {
	return idx % s.Width, idx / s.Width
}

// NeighborOffsets returns the full neighborhood for conn, clockwise from N.
func NeighborOffsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}

	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// ForwardOffsets returns the half of the neighborhood that points "ahead"
// in raster order (dy > 0, or dy == 0 and dx > 0): orthogonal → right (1,0)
// and bottom (0,1) from Conn4; diagonal → bottom-right (1,1) and
// bottom-left (-1,1) from the diagonals of Conn8. Visiting every cell and
// adding an edge for each in-bounds forward offset yields every undirected
// lattice edge exactly once.
func ForwardOffsets(orthogonal, diagonal bool) [][2]int {
	offsets := make([][2]int, 0, 4)
	if orthogonal {
		offsets = appendForward(offsets, NeighborOffsets(Conn4), false)
	}
	if diagonal {
		offsets = appendForward(offsets, NeighborOffsets(Conn8), true)
	}

	return offsets
}

func appendForward(dst, neighborhood [][2]int, diagonalOnly bool) [][2]int {
	for _, d := range neighborhood {
		if diagonalOnly && (d[0] == 0 || d[1] == 0) {
			continue
		}
		if d[1] > 0 || (d[1] == 0 && d[0] > 0) {
			dst = append(dst, d)
		}
	}

	return dst
}
