package nodes

import (
	"fmt"
	"io"
	"os"

	"github.com/lattice-ml/lattice/internal/format"
	"github.com/lattice-ml/lattice/internal/graph"
	"github.com/lattice-ml/lattice/internal/serialization"
)

// Trace configuration defaults: the first logFirst runs are always shown,
// thereafter every logFrequency-th run, so output stays bounded over
// unbounded training length. The row/time bounds are effectively unbounded
// by default.
const (
	DefaultLogFirst     = 10
	DefaultLogFrequency = 10
	DefaultOnlyUpTo     = 100000000
)

// TraceConfig carries the construction-time settings of a TraceNode.
type TraceConfig struct {
	Message        string // "say" text identifying the trace in the stream
	LogFirst       int    // always log the first LogFirst runs
	LogFrequency   int    // then log every LogFrequency-th run; 0 disables
	LogGradientToo bool   // also log the gradient on backward passes
	OnlyUpToRow    int    // render at most this many sequences
	OnlyUpToT      int    // render at most this many time steps
	Format         format.Options
}

// DefaultTraceConfig returns the default trace settings.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		LogFirst:     DefaultLogFirst,
		LogFrequency: DefaultLogFrequency,
		OnlyUpToRow:  DefaultOnlyUpTo,
		OnlyUpToT:    DefaultOnlyUpTo,
		Format:       format.DefaultOptions(),
	}
}

// TraceNode is a debugging aid: a pure pass-through in both value and
// gradient that renders the traced input to the diagnostic stream, with
// output volume bounded by the throttle rule above.
type TraceNode struct {
	graph.Base
	message        string
	logFirst       int
	logFrequency   int
	logGradientToo bool
	opts           format.Options
	onlyUpToRow    int
	onlyUpToT      int

	runs         int  // incremented once per forward pass
	prologueDone bool // prologue emitted for this validation epoch
	labels       []string
	out          io.Writer
}

// NewTrace creates a trace node over the given input.
func NewTrace(name string, input graph.Node, cfg TraceConfig) *TraceNode {
	n := &TraceNode{
		Base:           graph.NewBase("Trace", name),
		message:        cfg.Message,
		logFirst:       cfg.LogFirst,
		logFrequency:   cfg.LogFrequency,
		logGradientToo: cfg.LogGradientToo,
		opts:           cfg.Format,
		onlyUpToRow:    cfg.OnlyUpToRow,
		onlyUpToT:      cfg.OnlyUpToT,
		out:            os.Stderr,
	}
	n.AttachInputs(input)
	return n
}

// SetOutput redirects the diagnostic stream (stderr by default).
func (n *TraceNode) SetOutput(w io.Writer) {
	n.out = w
}

// Runs returns the current run counter.
func (n *TraceNode) Runs() int {
	return n.runs
}

// Labels returns the loaded label mapping.
func (n *TraceNode) Labels() []string {
	return n.labels
}

// BeginForwardPass increments the run counter before the pass executes.
func (n *TraceNode) BeginForwardPass() {
	n.runs++
}

// Forward copies the input into the output view and traces the value.
func (n *TraceNode) Forward(fr graph.FrameRange) error {
	result, err := n.ValueView(fr)
	if err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}
	input, err := graph.ViewOf(n.Inputs()[0], fr)
	if err != nil {
		return fmt.Errorf("trace %q: input: %w", n.Name(), err)
	}
	if err := result.CopyFrom(input); err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}
	return n.Log(fr, false)
}

// Backward adds the output gradient into the input gradient unchanged,
// then traces the gradient if configured.
func (n *TraceNode) Backward(fr graph.FrameRange, inputIndex int) error {
	if inputIndex != 0 {
		return fmt.Errorf("trace %q: invalid input index %d", n.Name(), inputIndex)
	}
	outGrad, err := n.GradientView(fr)
	if err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}
	inGrad, err := graph.GradViewOf(n.Inputs()[0], fr)
	if err != nil {
		return fmt.Errorf("trace %q: input gradient: %w", n.Name(), err)
	}
	if err := inGrad.AddFrom(outGrad); err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}
	if n.logGradientToo {
		return n.Log(fr, true)
	}
	return nil
}

// shouldLog applies the throttle rule for the current run.
func (n *TraceNode) shouldLog() bool {
	return n.runs <= n.logFirst || (n.logFrequency != 0 && (n.runs-1)%n.logFrequency == 0)
}

// Log renders the input's value (or gradient) for this run, subject to the
// throttle. The one-time prologue is emitted when the run counter first
// reaches 1 and not again until validation resets it.
func (n *TraceNode) Log(fr graph.FrameRange, logGradient bool) error {
	if n.runs == 1 && !n.prologueDone {
		n.prologueDone = true
		if _, err := io.WriteString(n.out, format.Processed(n.Name(), n.opts.Prologue, n.runs)); err != nil {
			return fmt.Errorf("trace %q: %w", n.Name(), err)
		}
	}
	if !n.shouldLog() {
		return nil
	}

	input := n.Inputs()[0]
	gradientMark := ""
	if logGradient {
		gradientMark = "(gradient) "
	}
	// --- for better visual separability from actual content
	if _, err := fmt.Fprintf(n.out, "------- Trace[%s] %s %s--> %s\n",
		fr, n.message, gradientMark, graph.Prototype(input)); err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}

	source := graph.ViewOf
	if logGradient {
		source = graph.GradViewOf
	}
	v, err := source(input, fr)
	if err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}

	render := format.Render{
		MaxRows:           n.onlyUpToRow,
		MaxSteps:          n.onlyUpToT,
		Transpose:         n.opts.Transpose,
		CategoryLabel:     n.opts.CategoryLabel,
		Sparse:            n.opts.Sparse,
		Labels:            n.labels,
		SequenceSeparator: format.Processed(n.Name(), n.opts.SequenceSeparator, n.runs),
		SequencePrologue:  format.Processed(n.Name(), n.opts.SequencePrologue, n.runs),
		SequenceEpilogue:  format.Processed(n.Name(), n.opts.SequenceEpilogue, n.runs),
		ElementSeparator:  format.Processed(n.Name(), n.opts.ElementSeparator, n.runs),
		SampleSeparator:   format.Processed(n.Name(), n.opts.SampleSeparator, n.runs),
		ValueFormat:       n.opts.ValueFormat(),
	}
	if err := render.Write(n.out, v); err != nil {
		return fmt.Errorf("trace %q: %w", n.Name(), err)
	}
	return nil
}

// Validate checks the unary map. On the final pass it lazily loads the
// label mapping when category or sparse rendering asked for one. Every
// validation pass resets the run counter, so re-validation restarts the
// throttle window.
func (n *TraceNode) Validate(finalPass bool) error {
	if err := n.ValidateUnaryMap(finalPass); err != nil {
		return err
	}
	if finalPass {
		if len(n.labels) == 0 && (n.opts.CategoryLabel || n.opts.Sparse) && n.opts.LabelMappingFile != "" {
			labels, err := format.LoadLabelFile(n.opts.LabelMappingFile)
			if err != nil {
				return fmt.Errorf("trace %q: %w", n.Name(), err)
			}
			n.labels = labels
		}
	}
	n.runs = 0
	n.prologueDone = false
	return nil
}

// SaveState writes the node's checkpoint fields in their fixed order.
func (n *TraceNode) SaveState(w *serialization.Writer) error {
	if err := w.WriteString("message", n.message); err != nil {
		return err
	}
	if err := w.WriteInt("logFirst", int64(n.logFirst)); err != nil {
		return err
	}
	if err := w.WriteInt("logFrequency", int64(n.logFrequency)); err != nil {
		return err
	}
	if err := w.WriteBool("logGradientToo", n.logGradientToo); err != nil {
		return err
	}
	if err := n.opts.Save(w); err != nil {
		return err
	}
	if err := w.WriteInt("onlyUpToRow", int64(n.onlyUpToRow)); err != nil {
		return err
	}
	return w.WriteInt("onlyUpToT", int64(n.onlyUpToT))
}

// LoadState reads the checkpoint fields. Streams written before model
// version 2 lack the onlyUpTo bounds; they load with the defaults.
func (n *TraceNode) LoadState(r *serialization.Reader) error {
	var err error
	if n.message, err = r.ReadString("message"); err != nil {
		return err
	}
	var logFirst, logFrequency int64
	if logFirst, err = r.ReadInt("logFirst"); err != nil {
		return err
	}
	if logFrequency, err = r.ReadInt("logFrequency"); err != nil {
		return err
	}
	n.logFirst = int(logFirst)
	n.logFrequency = int(logFrequency)
	if n.logGradientToo, err = r.ReadBool("logGradientToo"); err != nil {
		return err
	}
	if err = n.opts.Load(r); err != nil {
		return err
	}
	if r.Version() < serialization.ModelVersion2 {
		n.onlyUpToRow = DefaultOnlyUpTo
		n.onlyUpToT = DefaultOnlyUpTo
		return nil
	}
	var row, t int64
	if row, err = r.ReadInt("onlyUpToRow"); err != nil {
		return err
	}
	if t, err = r.ReadInt("onlyUpToT"); err != nil {
		return err
	}
	n.onlyUpToRow = int(row)
	n.onlyUpToT = int(t)
	return nil
}
