// Package config loads named generator presets from YAML. A preset
// bundles a pattern name, run dimensions and tunables so the CLIs can
// reference one configuration by name.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"neurogrid/pkg/core"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EngineParams overrides a subset of the shared engine tunables. Zero
// values keep the engine default.
type EngineParams struct {
	ActiveThreshold float64 `yaml:"active_threshold"`
	SpikeThreshold  float64 `yaml:"spike_threshold"`
	NeighborWeight  float64 `yaml:"neighbor_weight"`
	DecayWeight     float64 `yaml:"decay_weight"`
	MaxConnections  int     `yaml:"max_connections"`
}

// Apply overlays the non-zero overrides onto base.
func (p EngineParams) Apply(base core.Params) core.Params {
	if p.ActiveThreshold > 0 {
		base.ActiveThreshold = p.ActiveThreshold
	}
	if p.SpikeThreshold > 0 {
		base.SpikeThreshold = p.SpikeThreshold
	}
	if p.NeighborWeight > 0 {
		base.NeighborWeight = p.NeighborWeight
	}
	if p.DecayWeight > 0 {
		base.DecayWeight = p.DecayWeight
	}
	if p.MaxConnections > 0 {
		base.MaxConnections = p.MaxConnections
	}
	return base
}

// Preset describes one named generator configuration.
type Preset struct {
	Pattern string            `yaml:"pattern"`
	Size    int               `yaml:"size"`
	Frames  int               `yaml:"frames"`
	Seed    int64             `yaml:"seed"`
	Engine  EngineParams      `yaml:"engine"`
	Options map[string]string `yaml:"options"`
}

// File is the root of a preset configuration file.
type File struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Load returns the embedded defaults merged with the presets from path,
// if any. Presets from the file shadow same-named defaults.
func Load(path string) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(defaultsYAML, f); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path == "" {
		return f, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	overlay := &File{}
	if err := yaml.Unmarshal(raw, overlay); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for name, preset := range overlay.Presets {
		f.Presets[name] = preset
	}
	return f, nil
}

// Preset looks up a named preset.
func (f *File) Preset(name string) (Preset, error) {
	p, ok := f.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

// Build constructs an engine for the preset. Pattern packages must be
// registered before calling, typically via pkg/patterns/all.
func (p Preset) Build() (*core.Engine, error) {
	factory, ok := core.Patterns()[p.Pattern]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", p.Pattern)
	}
	size := p.Size
	if size <= 0 {
		size = 4
	}
	seed := p.Seed
	if seed == 0 {
		seed = 42
	}
	params := p.Engine.Apply(core.DefaultParams())
	return core.NewWithParams(factory(p.Options), size, seed, params), nil
}

// FrameCount returns the preset's frame count, defaulted for favicon use.
func (p Preset) FrameCount() int {
	if p.Frames <= 0 {
		return 12
	}
	return p.Frames
}
