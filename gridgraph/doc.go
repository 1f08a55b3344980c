// Package gridgraph holds the per-pixel grids a layered graph is built
// from and filled with: one vector of values per grid cell.
//
// What:
//
//   - Size: a W×H extent with row-major Index/Coordinate and InBounds.
//   - Vectors: a multi-channel grid, one fixed-length vector per cell
//     (per-pixel feature vectors or per-pixel unary potentials).
//   - Channel: a single-channel grid, one scalar per cell.
//   - Stack: an ordered sequence of Channels; the vector of a cell is the
//     concatenation of the channel values in order.
//   - Source: the read-only view shared by Vectors and Stack, so consumers
//     never care which of the two shapes they were given.
//   - Connectivity offsets: Conn4 / Conn8 neighborhoods and their forward
//     halves (right/bottom, bottom-right/bottom-left) used to emit each
//     undirected lattice edge exactly once.
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrChannelMismatch: cell vectors of different lengths, or channels of
//     different sizes in a Stack.
//   - ErrOutOfBounds: coordinate outside the grid.
//
// Complexity:
//
//   - At/Set/Vector: O(C) for C channels; construction O(W×H×C).
package gridgraph
