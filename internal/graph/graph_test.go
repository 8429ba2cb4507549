package graph

import (
	"bytes"
	"testing"

	"github.com/lattice-ml/lattice/internal/serialization"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// passNode is a minimal unary pass-through used to exercise the driver.
type passNode struct {
	Base
	forwardRuns int
	beginRuns   int
}

func newPassNode(name string, input Node) *passNode {
	n := &passNode{Base: NewBase("Pass", name)}
	n.AttachInputs(input)
	return n
}

func (n *passNode) BeginForwardPass() { n.beginRuns++ }

func (n *passNode) Forward(fr FrameRange) error {
	n.forwardRuns++
	out, err := n.ValueView(fr)
	if err != nil {
		return err
	}
	in, err := ViewOf(n.Inputs()[0], fr)
	if err != nil {
		return err
	}
	return out.CopyFrom(in)
}

func (n *passNode) Backward(fr FrameRange, inputIndex int) error {
	outGrad, err := n.GradientView(fr)
	if err != nil {
		return err
	}
	inGrad, err := GradViewOf(n.Inputs()[0], fr)
	if err != nil {
		return err
	}
	return inGrad.AddFrom(outGrad)
}

func (n *passNode) Validate(finalPass bool) error {
	return n.ValidateUnaryMap(finalPass)
}

func TestFrameRangeString(t *testing.T) {
	tests := []struct {
		fr   FrameRange
		want string
	}{
		{AllFrames(), ""},
		{Frame(3), "3"},
		{FrameSpan(2, 5), "2..4"},
	}
	for _, tt := range tests {
		if got := tt.fr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTopologicalOrder(t *testing.T) {
	in := NewInput("x", tensor.Shape{2, 1, 2}, tensor.Float32)
	a := newPassNode("a", in)
	b := newPassNode("b", a)

	g, err := New(b)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, 3)
	for _, n := range g.Nodes() {
		names = append(names, n.Name())
	}
	want := []string{"x", "a", "b"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order %v, want %v", names, want)
		}
	}
	if g.Find("a") != a || g.Find("missing") != nil {
		t.Error("Find misbehaves")
	}
}

func TestCycleDetection(t *testing.T) {
	a := &passNode{Base: NewBase("Pass", "a")}
	b := newPassNode("b", a)
	a.AttachInputs(b)
	if _, err := New(a); err == nil {
		t.Error("expected cycle error")
	}
}

func TestForwardBeforeValidation(t *testing.T) {
	in := NewInput("x", tensor.Shape{1}, tensor.Float32)
	g, err := New(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.ForwardPass(AllFrames()); err == nil {
		t.Error("expected error evaluating unvalidated graph")
	}
	if err := g.BackwardPass(AllFrames()); err == nil {
		t.Error("expected error backpropagating unvalidated graph")
	}
}

func TestForwardBackwardPass(t *testing.T) {
	in := NewInput("x", tensor.Shape{2, 1, 2}, tensor.Float32)
	n := newPassNode("p", in)
	g, err := New(n)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := Feed(in, []float32{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := g.ForwardPass(AllFrames()); err != nil {
		t.Fatal(err)
	}
	if n.beginRuns != 1 || n.forwardRuns != 1 {
		t.Errorf("begin/forward ran %d/%d times, want 1/1", n.beginRuns, n.forwardRuns)
	}
	got := n.Value().AsFloat32()
	for i, want := range []float32{1, 2, 3, 4} {
		if got[i] != want {
			t.Errorf("value element %d = %v, want %v", i, got[i], want)
		}
	}

	copy(n.Gradient().AsFloat32(), []float32{5, 6, 7, 8})
	if err := g.BackwardPass(AllFrames()); err != nil {
		t.Fatal(err)
	}
	gotGrad := in.Gradient().AsFloat32()
	for i, want := range []float32{5, 6, 7, 8} {
		if gotGrad[i] != want {
			t.Errorf("gradient element %d = %v, want %v", i, gotGrad[i], want)
		}
	}
}

func TestValidateUnaryMapArity(t *testing.T) {
	n := &passNode{Base: NewBase("Pass", "lonely")}
	if err := n.Validate(false); err == nil {
		t.Error("expected arity error for node without inputs")
	}
}

func TestPrototype(t *testing.T) {
	in := NewInput("x", tensor.Shape{4, 2, 3}, tensor.Float32)
	n := newPassNode("p", in)
	g, _ := New(n)
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	want := "p : Pass (x [4 x 2 x 3])"
	if got := Prototype(n); got != want {
		t.Errorf("Prototype = %q, want %q", got, want)
	}
}

// persistNode carries one string through checkpoints.
type persistNode struct {
	passNode
	payload string
}

func (n *persistNode) SaveState(w *serialization.Writer) error {
	return w.WriteString("payload", n.payload)
}

func (n *persistNode) LoadState(r *serialization.Reader) error {
	var err error
	n.payload, err = r.ReadString("payload")
	return err
}

func TestCheckpointRoundTrip(t *testing.T) {
	build := func(payload string) (*Graph, *persistNode) {
		in := NewInput("x", tensor.Shape{1}, tensor.Float32)
		n := &persistNode{passNode: passNode{Base: NewBase("Pass", "p")}, payload: payload}
		n.AttachInputs(in)
		g, err := New(n)
		if err != nil {
			t.Fatal(err)
		}
		return g, n
	}

	g1, _ := build("state one")
	var buf bytes.Buffer
	if err := g1.SaveCheckpoint(&buf); err != nil {
		t.Fatal(err)
	}

	g2, n2 := build("")
	if err := g2.LoadCheckpoint(&buf); err != nil {
		t.Fatal(err)
	}
	if n2.payload != "state one" {
		t.Errorf("payload = %q, want %q", n2.payload, "state one")
	}
}

func TestCheckpointNodeMismatch(t *testing.T) {
	in := NewInput("x", tensor.Shape{1}, tensor.Float32)
	n := &persistNode{passNode: passNode{Base: NewBase("Pass", "p")}}
	n.AttachInputs(in)
	g, _ := New(n)

	var buf bytes.Buffer
	if err := g.SaveCheckpoint(&buf); err != nil {
		t.Fatal(err)
	}

	in2 := NewInput("x", tensor.Shape{1}, tensor.Float32)
	other := &persistNode{passNode: passNode{Base: NewBase("Pass", "renamed")}}
	other.AttachInputs(in2)
	g2, _ := New(other)
	if err := g2.LoadCheckpoint(&buf); err == nil {
		t.Error("expected error loading checkpoint into mismatched graph")
	}
}
