package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Render bundles the processed fragments and bounds for one formatted
// write of a tensor view. Separator fragments must already be template
// expanded; ValueFormat is the verb built by Options.ValueFormat.
type Render struct {
	MaxRows  int // sequences rendered at most
	MaxSteps int // time steps rendered per sequence at most

	Transpose     bool
	CategoryLabel bool
	Sparse        bool
	Labels        []string

	SequenceSeparator string
	SequencePrologue  string
	SequenceEpilogue  string
	ElementSeparator  string
	SampleSeparator   string
	ValueFormat       string
}

// Write renders the view sequence by sequence. Each of the view's samples
// is one sequence; its time steps are rendered up to MaxSteps, each sample
// vector formatted per the configured mode.
func (rn *Render) Write(w io.Writer, v *tensor.View) error {
	rows := v.Samples()
	if rn.MaxRows > 0 && rows > rn.MaxRows {
		rows = rn.MaxRows
	}
	steps := v.TimeSteps()
	if rn.MaxSteps > 0 && steps > rn.MaxSteps {
		steps = rn.MaxSteps
	}

	var sb strings.Builder
	for n := 0; n < rows; n++ {
		if n > 0 {
			sb.WriteString(rn.SequenceSeparator)
		}
		sb.WriteString(rn.SequencePrologue)
		for t := 0; t < steps; t++ {
			if t > 0 {
				sb.WriteString(rn.sampleJoin())
			}
			rn.writeSample(&sb, v, t, n)
		}
		sb.WriteString(rn.SequenceEpilogue)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// sampleJoin returns the separator between consecutive samples of one
// sequence. With Transpose samples stack as rows; without it they extend
// the current row and the element separator takes over the joining role.
func (rn *Render) sampleJoin() string {
	if rn.Transpose {
		return rn.SampleSeparator
	}
	return rn.ElementSeparator
}

func (rn *Render) elementJoin() string {
	if rn.Transpose {
		return rn.ElementSeparator
	}
	return rn.SampleSeparator
}

// writeSample renders one (time step, sequence) sample vector.
func (rn *Render) writeSample(sb *strings.Builder, v *tensor.View, t, n int) {
	dims := v.SampleSize()
	switch {
	case rn.CategoryLabel:
		sb.WriteString(rn.category(argmax(v, t, n, dims)))
	case rn.Sparse:
		first := true
		for d := 0; d < dims; d++ {
			val := v.At(t, n, d)
			if val == 0 {
				continue
			}
			if !first {
				sb.WriteString(rn.elementJoin())
			}
			first = false
			fmt.Fprintf(sb, "%s:", rn.index(d))
			fmt.Fprintf(sb, rn.ValueFormat, val)
		}
	default:
		for d := 0; d < dims; d++ {
			if d > 0 {
				sb.WriteString(rn.elementJoin())
			}
			fmt.Fprintf(sb, rn.ValueFormat, v.At(t, n, d))
		}
	}
}

// category formats a category index through the label mapping when one is
// loaded, or as a bare index otherwise.
func (rn *Render) category(idx int) string {
	if idx < len(rn.Labels) {
		return fmt.Sprintf(rn.ValueFormat, rn.Labels[idx])
	}
	return fmt.Sprintf("%d", idx)
}

// index names a sparse element: mapped label if available, else the index.
func (rn *Render) index(d int) string {
	if d < len(rn.Labels) {
		return rn.Labels[d]
	}
	return fmt.Sprintf("%d", d)
}

func argmax(v *tensor.View, t, n, dims int) int {
	best := 0
	bestVal := v.At(t, n, 0)
	for d := 1; d < dims; d++ {
		if val := v.At(t, n, d); val > bestVal {
			best, bestVal = d, val
		}
	}
	return best
}
