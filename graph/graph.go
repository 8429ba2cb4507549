// Copyright 2026 Lattice ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for building and evaluating
// Lattice computation graphs.
package graph

import (
	"github.com/lattice-ml/lattice/internal/graph"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Node is a unit of the computation graph.
type Node = graph.Node

// Base carries the state common to all nodes.
type Base = graph.Base

// FrameRange addresses the time-step subrange of one evaluation.
type FrameRange = graph.FrameRange

// Graph holds nodes in topological order and drives evaluation.
type Graph = graph.Graph

// InputNode is a leaf node fed from outside the graph.
type InputNode = graph.InputNode

// Persistent is implemented by nodes with checkpoint state.
type Persistent = graph.Persistent

// AllFrames returns a FrameRange covering the whole sequence.
func AllFrames() FrameRange { return graph.AllFrames() }

// Frame returns a FrameRange addressing the single time step t.
func Frame(t int) FrameRange { return graph.Frame(t) }

// FrameSpan returns a FrameRange addressing time steps [begin, end).
func FrameSpan(begin, end int) FrameRange { return graph.FrameSpan(begin, end) }

// New builds a graph from the given root nodes.
func New(roots ...Node) (*Graph, error) { return graph.New(roots...) }

// NewInput creates an input node with the given geometry.
func NewInput(name string, shape tensor.Shape, dtype tensor.DataType) *InputNode {
	return graph.NewInput(name, shape, dtype)
}

// Feed copies data into an input node's value tensor.
func Feed[T tensor.DType](n *InputNode, values []T) error {
	return graph.Feed(n, values)
}

// Prototype formats a node's operation signature for diagnostics.
func Prototype(n Node) string { return graph.Prototype(n) }
