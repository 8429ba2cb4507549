// Copyright 2026 Lattice ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nodes provides the public API for the special-purpose graph
// nodes: ExternNode (dynamically resolved native computation) and
// TraceNode (throttled diagnostic logging of tensor values).
package nodes

import (
	"github.com/lattice-ml/lattice/internal/extfunc"
	"github.com/lattice-ml/lattice/internal/format"
	"github.com/lattice-ml/lattice/internal/graph"
	"github.com/lattice-ml/lattice/internal/nodes"
)

// ExternNode delegates its computation to a resolved external operator.
type ExternNode = nodes.ExternNode

// TraceNode logs traced values with deterministic throttling.
type TraceNode = nodes.TraceNode

// TraceConfig carries the construction-time settings of a TraceNode.
type TraceConfig = nodes.TraceConfig

// FormatOptions describes how traced values are rendered.
type FormatOptions = format.Options

// Trace defaults.
const (
	DefaultLogFirst     = nodes.DefaultLogFirst
	DefaultLogFrequency = nodes.DefaultLogFrequency
	DefaultOnlyUpTo     = nodes.DefaultOnlyUpTo
)

// NewExtern creates an extern node resolving through the given registry.
func NewExtern(name string, input graph.Node, registry *extfunc.Registry) *ExternNode {
	return nodes.NewExtern(name, input, registry)
}

// NewTrace creates a trace node over the given input.
func NewTrace(name string, input graph.Node, cfg TraceConfig) *TraceNode {
	return nodes.NewTrace(name, input, cfg)
}

// DefaultTraceConfig returns the default trace settings.
func DefaultTraceConfig() TraceConfig { return nodes.DefaultTraceConfig() }

// DefaultFormatOptions returns the default rendering options.
func DefaultFormatOptions() FormatOptions { return format.DefaultOptions() }
