// Package config loads YAML descriptions of a graph's nodes and of the
// external-operator loader, and builds the corresponding Graph.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level configuration document.
type File struct {
	Extern ExternConfig `yaml:"extern"`
	Nodes  []NodeConfig `yaml:"nodes"`
}

// ExternConfig selects and parameterizes the operator loader.
type ExternConfig struct {
	Loader        string `yaml:"loader"`         // "plugin" (default) or "static"
	Dir           string `yaml:"dir"`            // module directory for the plugin loader
	ModulePattern string `yaml:"module_pattern"` // e.g. "lib%s.so"
	SymbolPattern string `yaml:"symbol_pattern"` // e.g. "%s"
}

// NodeConfig describes one node. Kind selects the node type; the remaining
// fields apply per kind.
type NodeConfig struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`  // "input", "extern" or "trace"
	Input string `yaml:"input"` // name of the single input node

	// input nodes
	Shape []int  `yaml:"shape"`
	DType string `yaml:"dtype"` // "float32" (default) or "float64"

	// trace nodes
	Say            string        `yaml:"say"`
	LogFirst       *int          `yaml:"log_first"`
	LogFrequency   *int          `yaml:"log_frequency"`
	LogGradientToo bool          `yaml:"log_gradient_too"`
	OnlyUpToRow    *int          `yaml:"only_up_to_row"`
	OnlyUpToT      *int          `yaml:"only_up_to_t"`
	Format         *FormatConfig `yaml:"format"`
}

// FormatConfig mirrors the formatting options of a trace node.
type FormatConfig struct {
	Prologue          string  `yaml:"prologue"`
	Epilogue          string  `yaml:"epilogue"`
	SequenceSeparator string  `yaml:"sequence_separator"`
	SequencePrologue  string  `yaml:"sequence_prologue"`
	SequenceEpilogue  *string `yaml:"sequence_epilogue"`
	ElementSeparator  *string `yaml:"element_separator"`
	SampleSeparator   *string `yaml:"sample_separator"`
	Precision         string  `yaml:"precision"`
	Transpose         *bool   `yaml:"transpose"`
	CategoryLabel     bool    `yaml:"category_label"`
	Sparse            bool    `yaml:"sparse"`
	LabelMappingFile  string  `yaml:"label_mapping_file"`
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	seen := make(map[string]bool, len(f.Nodes))
	for i, nc := range f.Nodes {
		if nc.Name == "" {
			return fmt.Errorf("config: node %d has no name", i)
		}
		if seen[nc.Name] {
			return fmt.Errorf("config: duplicate node name %q", nc.Name)
		}
		seen[nc.Name] = true
		switch nc.Kind {
		case "input":
			if len(nc.Shape) == 0 {
				return fmt.Errorf("config: input node %q has no shape", nc.Name)
			}
		case "extern", "trace":
			if nc.Input == "" {
				return fmt.Errorf("config: %s node %q has no input", nc.Kind, nc.Name)
			}
		default:
			return fmt.Errorf("config: node %q has unknown kind %q", nc.Name, nc.Kind)
		}
	}
	return nil
}
