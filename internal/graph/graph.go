package graph

import (
	"fmt"
)

// Graph holds nodes in topological order and drives validation and
// evaluation. The evaluation order is fixed at construction; cycles are
// rejected.
type Graph struct {
	nodes     []Node
	validated bool
}

// New builds a graph from the given root nodes. All transitive inputs are
// collected and ordered topologically (inputs before consumers).
func New(roots ...Node) (*Graph, error) {
	g := &Graph{}
	const (
		unseen = iota
		visiting
		done
	)
	state := make(map[Node]int)

	var visit func(n Node) error
	visit = func(n Node) error {
		switch state[n] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("graph contains a cycle through node %q", n.Name())
		}
		state[n] = visiting
		for _, in := range n.Inputs() {
			if err := visit(in); err != nil {
				return err
			}
		}
		state[n] = done
		g.nodes = append(g.nodes, n)
		return nil
	}
	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Nodes returns the nodes in evaluation order.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Find returns the node with the given name, or nil.
func (g *Graph) Find(name string) Node {
	for _, n := range g.nodes {
		if n.Name() == name {
			return n
		}
	}
	return nil
}

// Validate runs shape inference over all nodes: a non-final pass to let
// shapes settle, then the final pass after which evaluation may begin.
func (g *Graph) Validate() error {
	for _, finalPass := range []bool{false, true} {
		for _, n := range g.nodes {
			if err := n.Validate(finalPass); err != nil {
				return fmt.Errorf("validate node %q: %w", n.Name(), err)
			}
		}
	}
	g.validated = true
	return nil
}

// ForwardPass evaluates all nodes for the frame range: BeginForwardPass on
// every node, then Forward in topological order. The graph must have been
// validated.
func (g *Graph) ForwardPass(fr FrameRange) error {
	if !g.validated {
		return fmt.Errorf("forward pass before validation")
	}
	for _, n := range g.nodes {
		n.BeginForwardPass()
	}
	for _, n := range g.nodes {
		if err := n.Forward(fr); err != nil {
			return fmt.Errorf("forward node %q: %w", n.Name(), err)
		}
	}
	return nil
}

// BackwardPass propagates gradients through all nodes in reverse
// topological order, calling Backward once per input of each node.
func (g *Graph) BackwardPass(fr FrameRange) error {
	if !g.validated {
		return fmt.Errorf("backward pass before validation")
	}
	for i := len(g.nodes) - 1; i >= 0; i-- {
		n := g.nodes[i]
		for idx := range n.Inputs() {
			if err := n.Backward(fr, idx); err != nil {
				return fmt.Errorf("backward node %q input %d: %w", n.Name(), idx, err)
			}
		}
	}
	return nil
}
