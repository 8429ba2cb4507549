package graph

import (
	"fmt"
	"io"

	"github.com/lattice-ml/lattice/internal/serialization"
)

// Persistent is implemented by nodes that carry checkpoint state beyond
// their identity. Nodes without extra fields simply don't implement it.
type Persistent interface {
	SaveState(w *serialization.Writer) error
	LoadState(r *serialization.Reader) error
}

// SaveCheckpoint writes the state of every persistent node, in evaluation
// order, preceded by the node's name.
func (g *Graph) SaveCheckpoint(w io.Writer) error {
	sw, err := serialization.NewWriter(w)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	for _, n := range g.nodes {
		p, ok := n.(Persistent)
		if !ok {
			continue
		}
		if err := sw.WriteString("nodeName", n.Name()); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
		if err := p.SaveState(sw); err != nil {
			return fmt.Errorf("save node %q: %w", n.Name(), err)
		}
	}
	return nil
}

// LoadCheckpoint restores the state of every persistent node from a stream
// written by SaveCheckpoint over a graph of the same structure. Any
// mismatch or truncation fails the whole load; the graph must not be
// treated as partially usable afterwards.
func (g *Graph) LoadCheckpoint(r io.Reader) error {
	sr, err := serialization.NewReader(r)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	for _, n := range g.nodes {
		p, ok := n.(Persistent)
		if !ok {
			continue
		}
		name, err := sr.ReadString("nodeName")
		if err != nil {
			return fmt.Errorf("load checkpoint: %w", err)
		}
		if name != n.Name() {
			return fmt.Errorf("load checkpoint: stream has node %q, graph expects %q", name, n.Name())
		}
		if err := p.LoadState(sr); err != nil {
			return fmt.Errorf("load node %q: %w", n.Name(), err)
		}
	}
	return nil
}
