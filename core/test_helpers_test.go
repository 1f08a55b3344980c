// SPDX-License-Identifier: MIT
// Package core_test contains test helpers for lvcrf/core.
//
// Purpose:
//   - Provide small, deterministic fixtures for core.Graph.
//   - Keep *testing.T out of goroutines (collect errors, assert afterwards).

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/matrix"
)

// Common state counts used across core tests.
const (
	States2 = 2
	States3 = 3
)

// mustNode adds a node and fails the test on error.
func mustNode(t *testing.T, g *core.Graph, layer, x, y, states int) int {
	t.Helper()
	id, err := g.AddNode(layer, x, y, states)
	require.NoError(t, err)

	return id
}

// mustEdge adds an edge and fails the test on error.
func mustEdge(t *testing.T, g *core.Graph, a, b int, kind core.EdgeKind) int {
	t.Helper()
	id, err := g.AddEdge(a, b, kind)
	require.NoError(t, err)

	return id
}

// mustDense builds a matrix from literal rows.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// triangle builds nodes 0,1,2 (2,3,2 states) joined by edges 0:(0,1) 1:(1,2) 2:(0,2).
func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	mustNode(t, g, 0, 0, 0, States2)
	mustNode(t, g, 0, 1, 0, States3)
	mustNode(t, g, 1, 0, 0, States2)
	mustEdge(t, g, 0, 1, core.KindWithin)
	mustEdge(t, g, 1, 2, core.KindWithin)
	mustEdge(t, g, 2, 0, core.KindLink)

	return g
}
