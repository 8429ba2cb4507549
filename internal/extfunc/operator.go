// Package extfunc resolves symbolic operator names to native entry points.
//
// The graph's operator vocabulary is open-ended: an ExternNode delegates
// its per-element computation to whatever function its name resolves to.
// Resolution happens through a Registry backed by a Loader strategy, either
// binding a symbol from a shared module on first use or serving a built-in
// table. Once a name resolves, it stays bound to the same entry point for
// the life of the registry.
package extfunc

import "github.com/lattice-ml/lattice/internal/tensor"

// TensorFunc is the fixed signature a native module exposes: it receives a
// handle to the node's output view and may mutate the addressed elements in
// place. Whether an implementation is safe for concurrent invocation is the
// module author's obligation; the registry does not synchronize calls.
type TensorFunc func(*tensor.View)

// Operator is a resolved entry point bound to an operator name.
type Operator interface {
	// Invoke executes the operator on the given tensor view.
	Invoke(v *tensor.View)
}

// OperatorFunc adapts a TensorFunc to the Operator interface.
type OperatorFunc TensorFunc

// Invoke calls the wrapped function.
func (f OperatorFunc) Invoke(v *tensor.View) { f(v) }
