// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional options for New and FillEdges.
//
// Contract:
//   - Option constructors validate and PANIC on meaningless inputs.
//   - Operations themselves never panic; they return sentinel errors.

package layered

import (
	"fmt"

	"go.uber.org/zap"
)

// Option customizes a Layered at construction.
type Option func(*Layered)

// WithLogger attaches a logger; events are emitted at Debug level under the
// "layered" name. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("layered: WithLogger(nil)")
	}
	return func(g *Layered) {
		g.logger = l.Named("layered")
	}
}

// WithTopology replaces the default ChainTopology. Panics on nil.
func WithTopology(t Topology) Option {
	if t == nil {
		panic("layered: WithTopology(nil)")
	}
	return func(g *Layered) {
		g.topology = t
	}
}

// WithWorkers overrides Config.Workers. n must be >= 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("layered: WithWorkers(%d)", n))
	}
	return func(g *Layered) {
		g.workers = n
	}
}

// fillConfig is resolved per FillEdges call.
type fillConfig struct {
	edgeWeight float64
	linkWeight float64
}

// FillOption customizes one FillEdges call.
type FillOption func(*fillConfig)

// WithEdgeWeight scales within-layer potentials by w instead of
// Config.EdgeWeight. Panics unless w is finite and non-negative.
func WithEdgeWeight(w float64) FillOption {
	if !validWeight(w) {
		panic(fmt.Sprintf("layered: WithEdgeWeight(%v)", w))
	}
	return func(c *fillConfig) {
		c.edgeWeight = w
	}
}

// WithLinkWeight scales link potentials by w instead of Config.LinkWeight.
// Panics unless w is finite and non-negative.
func WithLinkWeight(w float64) FillOption {
	if !validWeight(w) {
		panic(fmt.Sprintf("layered: WithLinkWeight(%v)", w))
	}
	return func(c *fillConfig) {
		c.linkWeight = w
	}
}
