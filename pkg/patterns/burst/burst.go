// Package burst implements the plain neighbor-counting pattern. It keeps
// no entities; a small ignition floor keeps the automaton from staying
// silent when the grid starts all-zero.
package burst

import (
	"strconv"

	"neurogrid/pkg/core"
)

// Config holds the burst pattern tunables.
type Config struct {
	// BaseChance is the ignition floor added to every cell's activation
	// probability.
	BaseChance float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{BaseChance: 0.06}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["base_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.BaseChance = parsed
		}
	}
	return c
}

// Rule is the neighbor-burst transition rule.
type Rule struct {
	cfg Config
}

// New returns a burst rule with the provided configuration.
func New(cfg Config) *Rule {
	return &Rule{cfg: cfg}
}

// Name returns the pattern identifier.
func (r *Rule) Name() string { return "burst" }

// Reset is a no-op; the burst pattern keeps no entity state.
func (r *Rule) Reset(*core.RNG, int) {}

// Advance is a no-op; there are no entities to evolve.
func (r *Rule) Advance(*core.Step) {}

// Bias returns the constant ignition floor.
func (r *Rule) Bias(x, y int, s *core.Step) float64 {
	return r.cfg.BaseChance
}

// Finalize is a no-op; the engine's cell pass is the whole transition.
func (r *Rule) Finalize(*core.Step) {}

// SpikeType labels burst activations as plain pulses.
func (r *Rule) SpikeType(x, y int, s *core.Step) core.SpikeType {
	return core.SpikePulse
}

func init() {
	core.Register("burst", func(cfg map[string]string) core.Rule {
		return New(FromMap(cfg))
	})
}
