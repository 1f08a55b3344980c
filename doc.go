// Package lvcrf builds multi-layer pairwise CRF graphs over images: the
// structural and potential-bookkeeping layer that prepares a graph for an
// external inference engine.
//
// What is lvcrf?
//
//	A small, thread-aware library that brings together:
//		• A pairwise graph store with unary and pairwise potentials
//		• Grid helpers for per-pixel score and feature images
//		• Potts-family potential models
//		• Layered topology, filling, edge groups and node marginalization
//
// Under the hood, everything is organized under five subpackages:
//
//	core/       Graph, Node, Edge: arena store of nodes, edges and potentials
//	matrix/     Dense potential matrices, validators, min-plus composition
//	gridgraph/  Vectors, Channel, Stack grids and lattice offsets
//	trainer/    Model capability: Potts, ContrastPotts, LinkPotts, ModelFunc
//	layered/    Layered: AddNodes, SetNodes, FillEdges, DefineEdgeGroup,
//	            SetGroupPot, Marginalize; Config and options
//
// Quick example (two layers, 2×2 image):
//
//	    layer 1   o───o
//	              │ ╲ │      links: │ between layers at every pixel
//	    layer 0   o───o
//
//	g, _ := layered.New(core.NewGraph(), cfg)
//	_ = g.AddNodes(2, 2)
//	_ = g.SetNodes(unaryBase, unaryOccl)
//	_ = g.FillEdges(trainer.ContrastPotts{}, link, features, params)
//	_ = g.Marginalize([]int{0})
//
// Potentials are costs: lower is more likely.
package lvcrf
