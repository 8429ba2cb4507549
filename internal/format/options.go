// Package format renders tensor values as human-readable text for the
// trace diagnostics: per-node formatting options with template token
// expansion, label-mapping files, and the bounded minibatch writer.
package format

import (
	"strconv"
	"strings"

	"github.com/lattice-ml/lattice/internal/serialization"
)

// Options describes how a node's values are rendered. It is configured
// once at node construction or load and not mutated afterwards.
type Options struct {
	Prologue          string // emitted once before the first logged run
	Epilogue          string // persisted for layout compatibility; not emitted
	SequenceSeparator string // between sequences
	SequencePrologue  string // before each sequence
	SequenceEpilogue  string // after each sequence
	ElementSeparator  string // between elements of one sample
	SampleSeparator   string // between samples
	Precision         string // printf precision spec, e.g. ".4"
	Transpose         bool   // samples as rows rather than columns
	CategoryLabel     bool   // render argmax category instead of values
	Sparse            bool   // render only non-zero entries
	LabelMappingFile  string // path to label file for category/sparse modes
}

// DefaultOptions returns the defaults: samples as rows, one sample per
// line, elements space-separated, each sequence terminated by a newline.
func DefaultOptions() Options {
	return Options{
		SequenceEpilogue: "\n",
		ElementSeparator: " ",
		SampleSeparator:  "\n",
		Transpose:        true,
	}
}

// FormatChar returns the value format character: 'f' for numeric values,
// 's' for mapped category labels, 'u' for raw category indices.
func (o *Options) FormatChar() byte {
	switch {
	case !o.CategoryLabel:
		return 'f'
	case o.LabelMappingFile != "":
		return 's'
	default:
		return 'u'
	}
}

// ValueFormat builds the fmt verb used for a single value, e.g. "%.4f".
// The 'u' character maps to the %d verb.
func (o *Options) ValueFormat() string {
	c := o.FormatChar()
	if c == 'u' {
		c = 'd'
	}
	return "%" + o.Precision + string(c)
}

// Processed expands a template fragment for one run: backslash escapes
// become control characters, "%s" becomes the node name and "%d" the run
// number.
func Processed(nodeName, fragment string, runs int) string {
	fragment = strings.ReplaceAll(fragment, `\n`, "\n")
	fragment = strings.ReplaceAll(fragment, `\t`, "\t")
	fragment = strings.ReplaceAll(fragment, "%s", nodeName)
	fragment = strings.ReplaceAll(fragment, "%d", strconv.Itoa(runs))
	return fragment
}

// Save writes the options block in its fixed field order.
func (o *Options) Save(w *serialization.Writer) error {
	if err := w.WriteBool("transpose", o.Transpose); err != nil {
		return err
	}
	if err := w.WriteBool("isCategoryLabel", o.CategoryLabel); err != nil {
		return err
	}
	if err := w.WriteString("labelMappingFile", o.LabelMappingFile); err != nil {
		return err
	}
	if err := w.WriteBool("isSparse", o.Sparse); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"prologue", o.Prologue},
		{"epilogue", o.Epilogue},
		{"sequenceSeparator", o.SequenceSeparator},
		{"sequencePrologue", o.SequencePrologue},
		{"sequenceEpilogue", o.SequenceEpilogue},
		{"elementSeparator", o.ElementSeparator},
		{"sampleSeparator", o.SampleSeparator},
		{"precisionFormat", o.Precision},
	} {
		if err := w.WriteString(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the options block written by Save.
func (o *Options) Load(r *serialization.Reader) error {
	var err error
	if o.Transpose, err = r.ReadBool("transpose"); err != nil {
		return err
	}
	if o.CategoryLabel, err = r.ReadBool("isCategoryLabel"); err != nil {
		return err
	}
	if o.LabelMappingFile, err = r.ReadString("labelMappingFile"); err != nil {
		return err
	}
	if o.Sparse, err = r.ReadBool("isSparse"); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"prologue", &o.Prologue},
		{"epilogue", &o.Epilogue},
		{"sequenceSeparator", &o.SequenceSeparator},
		{"sequencePrologue", &o.SequencePrologue},
		{"sequenceEpilogue", &o.SequenceEpilogue},
		{"elementSeparator", &o.ElementSeparator},
		{"sampleSeparator", &o.SampleSeparator},
		{"precisionFormat", &o.Precision},
	} {
		if *f.dst, err = r.ReadString(f.name); err != nil {
			return err
		}
	}
	return nil
}
