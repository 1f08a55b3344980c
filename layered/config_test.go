// SPDX-License-Identifier: MIT

package layered_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvcrf/core"
	"github.com/katalvlaran/lvcrf/layered"
)

func TestGraphType_StringAndParse(t *testing.T) {
	cases := []struct {
		typ  layered.GraphType
		text string
	}{
		{layered.TypeNone, "none"},
		{layered.TypeGrid, "grid"},
		{layered.TypeGrid | layered.TypeLink, "grid|link"},
		{layered.TypeGrid | layered.TypeDiag | layered.TypeLink, "grid|diag|link"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.text, tc.typ.String())
		got, err := layered.ParseGraphType(tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.typ, got)
	}

	got, err := layered.ParseGraphType("Diagonal, GRID")
	require.NoError(t, err)
	assert.Equal(t, layered.TypeGrid|layered.TypeDiag, got)

	_, err = layered.ParseGraphType("grid|hex")
	require.ErrorIs(t, err, layered.ErrInvalidArgument)

	assert.True(t, (layered.TypeGrid | layered.TypeDiag).Has(layered.TypeDiag))
	assert.False(t, layered.TypeGrid.Has(layered.TypeLink))
	assert.Equal(t, layered.GraphType(1), layered.TypeGrid)
	assert.Equal(t, layered.GraphType(2), layered.TypeDiag)
	assert.Equal(t, layered.GraphType(4), layered.TypeLink)
}

func TestLoadConfig(t *testing.T) {
	doc := `
layers: 2
type: [grid, diag, link]
base_states: 5
other_states: 2
link_weight: 0.25
workers: 3
`
	cfg, err := layered.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, layered.Config{
		Layers:      2,
		Type:        layered.TypeGrid | layered.TypeDiag | layered.TypeLink,
		BaseStates:  5,
		OtherStates: 2,
		EdgeWeight:  1,
		LinkWeight:  0.25,
		Workers:     3,
	}, cfg)

	cfg, err = layered.LoadConfig(strings.NewReader("type: grid|link\n"))
	require.NoError(t, err)
	assert.Equal(t, layered.TypeGrid|layered.TypeLink, cfg.Type)

	cfg, err = layered.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, layered.DefaultConfig(), cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":  "layer: 2\n",
		"unknown flag": "type: hex\n",
		"bad layers":   "layers: 0\n",
		"bad weight":   "edge_weight: -1\n",
		"type mapping": "type: {grid: true}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := layered.LoadConfig(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestGraphType_YAMLRoundTrip(t *testing.T) {
	in := struct {
		Type layered.GraphType `yaml:"type"`
	}{Type: layered.TypeDiag | layered.TypeLink}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "diag|link")

	var back struct {
		Type layered.GraphType `yaml:"type"`
	}
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, in.Type, back.Type)
}

func TestConfig_Validate(t *testing.T) {
	mutate := map[string]func(*layered.Config){
		"layers":       func(c *layered.Config) { c.Layers = 0 },
		"type bits":    func(c *layered.Config) { c.Type = 8 },
		"base states":  func(c *layered.Config) { c.BaseStates = 0 },
		"other states": func(c *layered.Config) { c.Layers, c.OtherStates = 2, 0 },
		"edge weight":  func(c *layered.Config) { c.EdgeWeight = math.NaN() },
		"link weight":  func(c *layered.Config) { c.LinkWeight = math.Inf(1) },
		"workers":      func(c *layered.Config) { c.Workers = -1 },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			cfg := layered.DefaultConfig()
			fn(&cfg)
			require.ErrorIs(t, cfg.Validate(), layered.ErrInvalidArgument)
			_, err := layered.New(core.NewGraph(), cfg)
			require.ErrorIs(t, err, layered.ErrInvalidArgument)
		})
	}

	// Other states are irrelevant for a single layer.
	cfg := layered.DefaultConfig()
	cfg.OtherStates = 0
	require.NoError(t, cfg.Validate())

	_, err := layered.New(nil, layered.DefaultConfig())
	require.ErrorIs(t, err, layered.ErrInvalidArgument)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { layered.WithLogger(nil) })
	assert.Panics(t, func() { layered.WithTopology(nil) })
	assert.Panics(t, func() { layered.WithWorkers(0) })
	assert.Panics(t, func() { layered.WithEdgeWeight(-1) })
	assert.Panics(t, func() { layered.WithLinkWeight(math.NaN()) })
}

func TestLogging_DebugEvents(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	g, _ := build(t, config(1, layered.TypeGrid, 2, 2), 3, 1, layered.WithLogger(zap.New(obsCore)))

	require.NoError(t, g.DefineEdgeGroup(1, 0, -0.5, 1))
	require.NoError(t, g.Marginalize([]int{1}))

	built := logs.FilterMessage("topology built").All()
	require.Len(t, built, 1)
	assert.Equal(t, "layered", built[0].LoggerName)
	assert.Equal(t, int64(3), built[0].ContextMap()["nodes"])
	assert.Equal(t, int64(2), built[0].ContextMap()["edges"])

	require.Equal(t, 1, logs.FilterMessage("edge group defined").Len())
	marg := logs.FilterMessage("nodes marginalized").All()
	require.Len(t, marg, 1)
	assert.Equal(t, int64(1), marg[0].ContextMap()["induced"])
}
