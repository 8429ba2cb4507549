// Package nodes implements the special-purpose graph nodes: ExternNode,
// which delegates its computation to a dynamically resolved native
// function, and TraceNode, which logs values flowing through the graph
// with deterministic throttling.
package nodes

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/extfunc"
	"github.com/lattice-ml/lattice/internal/graph"
)

// ExternNode evaluates an external operator: on each forward pass it copies
// its input into its output view, resolves the entry point bound to its own
// name and invokes it with a handle to the output view. Whatever the
// operator leaves in the view is the node's value.
//
// The operator name is derived from the node's graph name at construction
// and is not serialized; a renamed node resolves a different operator after
// a checkpoint round trip.
type ExternNode struct {
	graph.Base
	registry *extfunc.Registry
	funcName string
}

// NewExtern creates an extern node resolving through the given registry.
func NewExtern(name string, input graph.Node, registry *extfunc.Registry) *ExternNode {
	n := &ExternNode{
		Base:     graph.NewBase("Extern", name),
		registry: registry,
		funcName: name,
	}
	n.AttachInputs(input)
	return n
}

// FuncName returns the operator name the node resolves.
func (n *ExternNode) FuncName() string {
	return n.funcName
}

// Forward copies the input slice into the output view and invokes the
// resolved operator on it. A failed resolution is terminal for the
// evaluation; there is no retry.
func (n *ExternNode) Forward(fr graph.FrameRange) error {
	result, err := n.ValueView(fr)
	if err != nil {
		return fmt.Errorf("extern %q: %w", n.Name(), err)
	}
	input, err := graph.ViewOf(n.Inputs()[0], fr)
	if err != nil {
		return fmt.Errorf("extern %q: input: %w", n.Name(), err)
	}
	if err := result.CopyFrom(input); err != nil {
		return fmt.Errorf("extern %q: %w", n.Name(), err)
	}

	op, err := n.registry.Resolve(n.funcName)
	if err != nil {
		return err
	}
	op.Invoke(result)
	return nil
}

// Backward adds the output gradient into the input gradient unchanged.
// No external derivative is invoked; modules have no contract to express
// one, so the operator is treated as locally linear.
func (n *ExternNode) Backward(fr graph.FrameRange, inputIndex int) error {
	if inputIndex != 0 {
		return fmt.Errorf("extern %q: invalid input index %d", n.Name(), inputIndex)
	}
	outGrad, err := n.GradientView(fr)
	if err != nil {
		return fmt.Errorf("extern %q: %w", n.Name(), err)
	}
	inGrad, err := graph.GradViewOf(n.Inputs()[0], fr)
	if err != nil {
		return fmt.Errorf("extern %q: input gradient: %w", n.Name(), err)
	}
	if err := inGrad.AddFrom(outGrad); err != nil {
		return fmt.Errorf("extern %q: %w", n.Name(), err)
	}
	return nil
}

// Validate requires exactly one input; the node is an elementwise unary map.
func (n *ExternNode) Validate(finalPass bool) error {
	return n.ValidateUnaryMap(finalPass)
}
