package graph

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// InputNode is a leaf node whose value is fed from outside the graph.
type InputNode struct {
	Base
	shape tensor.Shape
	dtype tensor.DataType
}

// NewInput creates an input node producing tensors of the given geometry.
func NewInput(name string, shape tensor.Shape, dtype tensor.DataType) *InputNode {
	return &InputNode{
		Base:  NewBase("Input", name),
		shape: shape.Clone(),
		dtype: dtype,
	}
}

// Feed copies data into the node's value tensor. The slice must hold one
// value per element of the node's shape.
func Feed[T tensor.DType](n *InputNode, values []T) error {
	if n.Value() == nil {
		return fmt.Errorf("input %q: feed before validation", n.Name())
	}
	if len(values) != n.shape.NumElements() {
		return fmt.Errorf("input %q: got %d values, want %d", n.Name(), len(values), n.shape.NumElements())
	}
	copy(tensor.Elems[T](n.Value()), values)
	return nil
}

// Forward is a no-op; the value is supplied via Feed.
func (n *InputNode) Forward(FrameRange) error { return nil }

// Backward is a no-op; inputs have no inputs of their own.
func (n *InputNode) Backward(FrameRange, int) error { return nil }

// Validate allocates the value and gradient tensors.
func (n *InputNode) Validate(finalPass bool) error {
	if err := n.shape.Validate(); err != nil {
		return fmt.Errorf("input %q: %w", n.Name(), err)
	}
	if n.Value() != nil {
		return nil
	}
	return n.AllocateValue(n.shape, n.dtype)
}
