// Package graph provides the computation-graph substrate the Lattice nodes
// run on: frame addressing, the Node interface, a Base node with value and
// gradient storage, and a Graph that drives validation and evaluation in
// topological order.
package graph

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Node is a unit of the computation graph with forward (value-producing)
// and backward (gradient-producing) behavior.
type Node interface {
	// Name returns the node's graph name.
	Name() string

	// OpName returns the operation name (e.g. "Trace", "Extern", "Input").
	OpName() string

	// Inputs returns the node's input nodes.
	Inputs() []Node

	// Value returns the node's output tensor.
	Value() *tensor.RawTensor

	// Gradient returns the node's gradient tensor.
	Gradient() *tensor.RawTensor

	// BeginForwardPass is called once before each forward pass.
	BeginForwardPass()

	// Forward computes the node's value for the addressed frame range.
	Forward(fr FrameRange) error

	// Backward propagates the node's output gradient into the gradient of
	// the input at inputIndex for the addressed frame range.
	Backward(fr FrameRange, inputIndex int) error

	// Validate checks arity and shapes and infers the output shape. It runs
	// at least twice; finalPass is true on the last run, after which
	// evaluation may begin.
	Validate(finalPass bool) error
}

// Base carries the state common to all nodes. Concrete node types embed it.
type Base struct {
	name   string
	opName string
	inputs []Node
	value  *tensor.RawTensor
	grad   *tensor.RawTensor
}

// NewBase creates the common node state.
func NewBase(opName, name string) Base {
	return Base{name: name, opName: opName}
}

// Name returns the node's graph name.
func (b *Base) Name() string { return b.name }

// OpName returns the operation name.
func (b *Base) OpName() string { return b.opName }

// Inputs returns the node's input nodes.
func (b *Base) Inputs() []Node { return b.inputs }

// AttachInputs binds the node's inputs.
func (b *Base) AttachInputs(inputs ...Node) { b.inputs = inputs }

// Value returns the node's output tensor.
func (b *Base) Value() *tensor.RawTensor { return b.value }

// Gradient returns the node's gradient tensor.
func (b *Base) Gradient() *tensor.RawTensor { return b.grad }

// BeginForwardPass is a no-op for nodes without per-pass state.
func (b *Base) BeginForwardPass() {}

// SetValue installs the node's output tensor.
func (b *Base) SetValue(v *tensor.RawTensor) { b.value = v }

// AllocateValue creates the output tensor for the given shape and dtype,
// along with a zeroed gradient tensor of the same geometry.
func (b *Base) AllocateValue(shape tensor.Shape, dtype tensor.DataType) error {
	value, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		return fmt.Errorf("node %q: allocate value: %w", b.name, err)
	}
	grad, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		return fmt.Errorf("node %q: allocate gradient: %w", b.name, err)
	}
	b.value = value
	b.grad = grad
	return nil
}

// ValueView returns a view over the node's value for the frame range.
func (b *Base) ValueView(fr FrameRange) (*tensor.View, error) {
	return viewFor(b.value, fr)
}

// GradientView returns a view over the node's gradient for the frame range.
func (b *Base) GradientView(fr FrameRange) (*tensor.View, error) {
	return viewFor(b.grad, fr)
}

// ViewOf returns a view over n's value for the frame range.
func ViewOf(n Node, fr FrameRange) (*tensor.View, error) {
	return viewFor(n.Value(), fr)
}

// GradViewOf returns a view over n's gradient for the frame range.
func GradViewOf(n Node, fr FrameRange) (*tensor.View, error) {
	return viewFor(n.Gradient(), fr)
}

func viewFor(raw *tensor.RawTensor, fr FrameRange) (*tensor.View, error) {
	if raw == nil {
		return nil, fmt.Errorf("tensor not allocated (graph not validated?)")
	}
	begin, end := fr.TimeRange(raw.Shape().TimeSteps())
	return tensor.NewView(raw, begin, end)
}

// ValidateUnaryMap checks that the node has exactly one input and adopts
// its shape and dtype for the output (an elementwise unary map). The input
// must already have a value tensor by the final pass.
func (b *Base) ValidateUnaryMap(finalPass bool) error {
	if len(b.inputs) != 1 {
		return fmt.Errorf("node %q (%s): expected exactly 1 input, got %d", b.name, b.opName, len(b.inputs))
	}
	in := b.inputs[0].Value()
	if in == nil {
		if finalPass {
			return fmt.Errorf("node %q (%s): input %q has no value", b.name, b.opName, b.inputs[0].Name())
		}
		return nil
	}
	if b.value != nil && b.value.Shape().Equal(in.Shape()) && b.value.DType() == in.DType() {
		return nil
	}
	return b.AllocateValue(in.Shape(), in.DType())
}

// Prototype formats a node's operation signature for diagnostics, e.g.
// "t1 : Trace (f1 [4 x 2 x 3])".
func Prototype(n Node) string {
	s := fmt.Sprintf("%s : %s (", n.Name(), n.OpName())
	for i, in := range n.Inputs() {
		if i > 0 {
			s += ", "
		}
		s += in.Name()
		if in.Value() != nil {
			s += " " + in.Value().Shape().String()
		}
	}
	return s + ")"
}
