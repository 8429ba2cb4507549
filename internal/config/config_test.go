package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ml/lattice/internal/extfunc"
	"github.com/lattice-ml/lattice/internal/graph"
	"github.com/lattice-ml/lattice/internal/nodes"
	"github.com/lattice-ml/lattice/internal/tensor"
)

const sampleConfig = `
extern:
  loader: plugin
  dir: ./ops
  module_pattern: "lib%s.so"
nodes:
  - name: x
    kind: input
    shape: [4, 2, 3]
  - name: scale
    kind: extern
    input: x
  - name: probe
    kind: trace
    input: scale
    say: "watch scale"
    log_first: 3
    log_frequency: 7
    log_gradient_too: true
    only_up_to_row: 5
    format:
      precision: ".2"
      sparse: true
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	require.Len(t, f.Nodes, 3)

	assert.Equal(t, "plugin", f.Extern.Loader)
	assert.Equal(t, "lib%s.so", f.Extern.ModulePattern)

	probe := f.Nodes[2]
	assert.Equal(t, "trace", probe.Kind)
	assert.Equal(t, "watch scale", probe.Say)
	require.NotNil(t, probe.LogFirst)
	assert.Equal(t, 3, *probe.LogFirst)
	require.NotNil(t, probe.LogFrequency)
	assert.Equal(t, 7, *probe.LogFrequency)
	assert.True(t, probe.LogGradientToo)
	require.NotNil(t, probe.Format)
	assert.Equal(t, ".2", probe.Format.Precision)
	assert.True(t, probe.Format.Sparse)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown kind", "nodes:\n  - name: a\n    kind: mystery\n", "unknown kind"},
		{"missing name", "nodes:\n  - kind: input\n    shape: [1]\n", "no name"},
		{"duplicate name", "nodes:\n  - name: a\n    kind: input\n    shape: [1]\n  - name: a\n    kind: input\n    shape: [1]\n", "duplicate"},
		{"input without shape", "nodes:\n  - name: a\n    kind: input\n", "no shape"},
		{"trace without input", "nodes:\n  - name: a\n    kind: trace\n", "no input"},
		{"bad yaml", ":\n  -", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildAndEvaluate(t *testing.T) {
	f, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	static := extfunc.NewStaticLoader()
	static.RegisterFunc("scale", func(v *tensor.View) {
		s := v.Float32()
		for i := range s {
			s[i] *= 10
		}
	})

	g, registry, err := Build(f, static)
	require.NoError(t, err)
	require.NotNil(t, registry)
	require.NoError(t, g.Validate())

	in, ok := g.Find("x").(*graph.InputNode)
	require.True(t, ok)
	probe, ok := g.Find("probe").(*nodes.TraceNode)
	require.True(t, ok)
	probe.SetOutput(&bytes.Buffer{})

	values := make([]float32, 4*2*3)
	for i := range values {
		values[i] = float32(i)
	}
	require.NoError(t, graph.Feed(in, values))
	require.NoError(t, g.ForwardPass(graph.AllFrames()))

	got := probe.Value().AsFloat32()
	for i := range values {
		assert.Equal(t, values[i]*10, got[i], "element %d", i)
	}
}

func TestBuildUnknownInput(t *testing.T) {
	doc := "nodes:\n  - name: t\n    kind: trace\n    input: ghost\n"
	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	_, _, err = Build(f, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown input")
}

func TestBuildLoaderSelection(t *testing.T) {
	f, err := Parse([]byte("extern:\n  loader: static\nnodes: []\n"))
	require.NoError(t, err)
	_, registry, err := Build(f, nil)
	require.NoError(t, err)
	require.NotNil(t, registry)

	f2, err := Parse([]byte("extern:\n  loader: carrier-pigeon\nnodes: []\n"))
	require.NoError(t, err)
	_, _, err = Build(f2, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown extern loader"))
}
