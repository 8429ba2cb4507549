package config

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/extfunc"
	"github.com/lattice-ml/lattice/internal/format"
	"github.com/lattice-ml/lattice/internal/graph"
	"github.com/lattice-ml/lattice/internal/nodes"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Build constructs the graph and operator registry described by f.
// If staticOps is non-nil it is used as the loader regardless of the
// configured kind; this is how callers register built-in operators.
func Build(f *File, staticOps *extfunc.StaticLoader) (*graph.Graph, *extfunc.Registry, error) {
	loader, err := buildLoader(f, staticOps)
	if err != nil {
		return nil, nil, err
	}
	registry := extfunc.NewRegistry(loader)

	byName := make(map[string]graph.Node, len(f.Nodes))
	var roots []graph.Node
	consumed := make(map[string]bool)

	for _, nc := range f.Nodes {
		var n graph.Node
		switch nc.Kind {
		case "input":
			dtype, err := parseDType(nc.DType)
			if err != nil {
				return nil, nil, fmt.Errorf("node %q: %w", nc.Name, err)
			}
			n = graph.NewInput(nc.Name, tensor.Shape(nc.Shape), dtype)
		case "extern":
			input, ok := byName[nc.Input]
			if !ok {
				return nil, nil, fmt.Errorf("node %q: unknown input %q", nc.Name, nc.Input)
			}
			consumed[nc.Input] = true
			n = nodes.NewExtern(nc.Name, input, registry)
		case "trace":
			input, ok := byName[nc.Input]
			if !ok {
				return nil, nil, fmt.Errorf("node %q: unknown input %q", nc.Name, nc.Input)
			}
			consumed[nc.Input] = true
			n = nodes.NewTrace(nc.Name, input, traceConfig(nc))
		}
		byName[nc.Name] = n
	}

	for _, nc := range f.Nodes {
		if !consumed[nc.Name] {
			roots = append(roots, byName[nc.Name])
		}
	}
	g, err := graph.New(roots...)
	if err != nil {
		return nil, nil, err
	}
	return g, registry, nil
}

func buildLoader(f *File, staticOps *extfunc.StaticLoader) (extfunc.Loader, error) {
	if staticOps != nil {
		return staticOps, nil
	}
	switch f.Extern.Loader {
	case "", "plugin":
		return &extfunc.PluginLoader{
			Dir:           f.Extern.Dir,
			ModulePattern: f.Extern.ModulePattern,
			SymbolPattern: f.Extern.SymbolPattern,
		}, nil
	case "static":
		return extfunc.NewStaticLoader(), nil
	default:
		return nil, fmt.Errorf("config: unknown extern loader %q", f.Extern.Loader)
	}
}

func parseDType(s string) (tensor.DataType, error) {
	switch s {
	case "", "float32":
		return tensor.Float32, nil
	case "float64":
		return tensor.Float64, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", s)
	}
}

// traceConfig merges a node's settings over the trace defaults.
func traceConfig(nc NodeConfig) nodes.TraceConfig {
	cfg := nodes.DefaultTraceConfig()
	cfg.Message = nc.Say
	cfg.LogGradientToo = nc.LogGradientToo
	if nc.LogFirst != nil {
		cfg.LogFirst = *nc.LogFirst
	}
	if nc.LogFrequency != nil {
		cfg.LogFrequency = *nc.LogFrequency
	}
	if nc.OnlyUpToRow != nil {
		cfg.OnlyUpToRow = *nc.OnlyUpToRow
	}
	if nc.OnlyUpToT != nil {
		cfg.OnlyUpToT = *nc.OnlyUpToT
	}
	if fc := nc.Format; fc != nil {
		cfg.Format = formatOptions(fc)
	}
	return cfg
}

func formatOptions(fc *FormatConfig) format.Options {
	o := format.DefaultOptions()
	o.Prologue = fc.Prologue
	o.Epilogue = fc.Epilogue
	o.SequenceSeparator = fc.SequenceSeparator
	o.SequencePrologue = fc.SequencePrologue
	o.Precision = fc.Precision
	o.CategoryLabel = fc.CategoryLabel
	o.Sparse = fc.Sparse
	o.LabelMappingFile = fc.LabelMappingFile
	if fc.SequenceEpilogue != nil {
		o.SequenceEpilogue = *fc.SequenceEpilogue
	}
	if fc.ElementSeparator != nil {
		o.ElementSeparator = *fc.ElementSeparator
	}
	if fc.SampleSeparator != nil {
		o.SampleSeparator = *fc.SampleSeparator
	}
	if fc.Transpose != nil {
		o.Transpose = *fc.Transpose
	}
	return o
}
