// Copyright 2026 Lattice ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package extfunc provides the public API for the external-operator
// registry: loader strategies, the registry itself, and the Operator
// capability interface native modules implement.
package extfunc

import (
	"github.com/lattice-ml/lattice/internal/extfunc"
)

// TensorFunc is the fixed native entry-point signature.
type TensorFunc = extfunc.TensorFunc

// Operator is a resolved entry point bound to an operator name.
type Operator = extfunc.Operator

// OperatorFunc adapts a TensorFunc to the Operator interface.
type OperatorFunc = extfunc.OperatorFunc

// Loader binds an operator name to an entry point.
type Loader = extfunc.Loader

// StaticLoader serves operators from a built-in table.
type StaticLoader = extfunc.StaticLoader

// PluginLoader binds operator names to symbols in shared modules.
type PluginLoader = extfunc.PluginLoader

// Registry maps operator names to resolved entry points.
type Registry = extfunc.Registry

// LinkageError reports a failed resolution of an operator name.
type LinkageError = extfunc.LinkageError

// ErrUnknownOperator indicates a name the loader cannot serve.
var ErrUnknownOperator = extfunc.ErrUnknownOperator

// NewStaticLoader creates an empty static operator table.
func NewStaticLoader() *StaticLoader { return extfunc.NewStaticLoader() }

// NewRegistry creates a registry resolving through the given loader.
func NewRegistry(loader Loader) *Registry { return extfunc.NewRegistry(loader) }
