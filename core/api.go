// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summary getters.

package core

// Stats produces a deterministic, read-only snapshot of catalog sizes,
// including a classification of live edges by kind.
//
// Complexity:
//   - Time O(E span), Space O(1) plus the returned struct.
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		NodeCount:  g.liveNodes,
		EdgeCount:  g.liveEdges,
		NodeIDSpan: len(g.nodes),
		EdgeIDSpan: len(g.edges),
	}
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		switch e.Kind {
		case KindWithin:
			stats.WithinCount++
		case KindLink:
			stats.LinkCount++
		case KindInduced:
			stats.InducedCount++
		}
	}

	return &stats
}
