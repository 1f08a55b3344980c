// SPDX-License-Identifier: MIT
//
// File: config.go
// Role: GraphType flags, Config with YAML loading and validation.

package layered

import (
	"io"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// GraphType selects which edge families AddNodes creates. Flags combine
// with bitwise OR.
type GraphType uint8

const (
	// TypeNone creates nodes only.
	TypeNone GraphType = 0
	// TypeGrid adds right and bottom neighbors (4-connectivity).
	TypeGrid GraphType = 1
	// TypeDiag adds bottom-right and bottom-left neighbors.
	TypeDiag GraphType = 2
	// TypeLink adds inter-layer links at every cell.
	TypeLink GraphType = 4

	typeAll = TypeGrid | TypeDiag | TypeLink
)

var graphTypeNames = []struct {
	flag GraphType
	name string
}{
	{TypeGrid, "grid"},
	{TypeDiag, "diag"},
	{TypeLink, "link"},
}

// Has reports whether every flag of f is set in t.
func (t GraphType) Has(f GraphType) bool { return t&f == f }

// String renders t as "grid|diag|link" (set flags only) or "none".
func (t GraphType) String() string {
	if t == TypeNone {
		return "none"
	}
	parts := make([]string, 0, len(graphTypeNames))
	for _, n := range graphTypeNames {
		if t.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if rest := t &^ typeAll; rest != 0 {
		parts = append(parts, "unknown")
	}

	return strings.Join(parts, "|")
}

// ParseGraphType parses "none" or a "|"- or ","-separated list of
// grid, diag and link (case-insensitive). "diagonal" is accepted for diag.
func ParseGraphType(s string) (GraphType, error) {
	var t GraphType
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
	for _, f := range fields {
		switch f {
		case "none":
		case "grid":
			t |= TypeGrid
		case "diag", "diagonal":
			t |= TypeDiag
		case "link":
			t |= TypeLink
		default:
			return TypeNone, errors.Wrapf(ErrInvalidArgument, "ParseGraphType: unknown flag %q", f)
		}
	}

	return t, nil
}

// MarshalYAML encodes t as its String form.
func (t GraphType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts a scalar ("grid|link") or a sequence
// ([grid, link]) of flag names.
func (t *GraphType) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseGraphType(value.Value)
		if err != nil {
			return err
		}
		*t = parsed
	case yaml.SequenceNode:
		var acc GraphType
		for _, item := range value.Content {
			parsed, err := ParseGraphType(item.Value)
			if err != nil {
				return err
			}
			acc |= parsed
		}
		*t = acc
	default:
		return errors.Wrapf(ErrInvalidArgument, "GraphType: line %d: expected scalar or sequence", value.Line)
	}

	return nil
}

// Config is the static description of a layered graph.
type Config struct {
	// Layers is the number of labeling layers; layer 0 is the base layer.
	Layers int `yaml:"layers"`

	// Type selects the edge families created by AddNodes.
	Type GraphType `yaml:"type"`

	// BaseStates is the state count of layer 0; OtherStates of every other layer.
	BaseStates  int `yaml:"base_states"`
	OtherStates int `yaml:"other_states"`

	// EdgeWeight and LinkWeight scale within-layer and link potentials in
	// FillEdges unless overridden per call.
	EdgeWeight float64 `yaml:"edge_weight"`
	LinkWeight float64 `yaml:"link_weight"`

	// Workers bounds the parallel fills; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a single-layer, 4-connected, two-state config with
// unit weights.
func DefaultConfig() Config {
	return Config{
		Layers:      1,
		Type:        TypeGrid,
		BaseStates:  2,
		OtherStates: 2,
		EdgeWeight:  1,
		LinkWeight:  1,
	}
}

// LoadConfig decodes a YAML document on top of DefaultConfig and validates
// the result. Unknown keys are rejected. An empty document yields the
// defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "layered: LoadConfig")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field. OtherStates is only checked when Layers > 1.
func (c Config) Validate() error {
	switch {
	case c.Layers < 1:
		return errors.Wrapf(ErrInvalidArgument, "config: layers=%d, want >= 1", c.Layers)
	case c.Type&^typeAll != 0:
		return errors.Wrapf(ErrInvalidArgument, "config: unknown type bits %#x", uint8(c.Type))
	case c.BaseStates < 1:
		return errors.Wrapf(ErrInvalidArgument, "config: base_states=%d, want >= 1", c.BaseStates)
	case c.Layers > 1 && c.OtherStates < 1:
		return errors.Wrapf(ErrInvalidArgument, "config: other_states=%d, want >= 1", c.OtherStates)
	case !validWeight(c.EdgeWeight):
		return errors.Wrapf(ErrInvalidArgument, "config: edge_weight=%v", c.EdgeWeight)
	case !validWeight(c.LinkWeight):
		return errors.Wrapf(ErrInvalidArgument, "config: link_weight=%v", c.LinkWeight)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidArgument, "config: workers=%d", c.Workers)
	}

	return nil
}

// States returns the state count of nodes in layer.
func (c Config) States(layer int) int {
	if layer == 0 {
		return c.BaseStates
	}

	return c.OtherStates
}

// validWeight reports whether w is finite and non-negative.
func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
