// Package phased implements the hybrid pattern that cycles through the
// cluster, cascade and burst rules on a fixed-length schedule. Each
// phase owns its own entity population, rebuilt when the phase becomes
// active; the cell matrix carries across phase boundaries untouched.
package phased

import (
	"strconv"

	"neurogrid/pkg/core"
	"neurogrid/pkg/patterns/burst"
	"neurogrid/pkg/patterns/cascade"
	"neurogrid/pkg/patterns/cluster"
)

// Config holds the phased pattern tunables.
type Config struct {
	// PhaseDuration is the number of frames each phase stays active.
	PhaseDuration int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{PhaseDuration: 4}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["phase_duration"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.PhaseDuration = parsed
		}
	}
	return c
}

// Rule cycles the sub-rules cluster -> cascade -> burst, wrapping back
// to the first phase. There is no terminal phase; the cycle runs for as
// many frames as the engine asks for.
type Rule struct {
	cfg    Config
	phases []core.Rule
	active int
	// sticky start marker so the first Advance initializes phase 0.
	started bool
}

// New returns a phased rule with the provided configuration.
func New(cfg Config) *Rule {
	return &Rule{
		cfg: cfg,
		phases: []core.Rule{
			cluster.New(cluster.DefaultConfig()),
			cascade.New(cascade.DefaultConfig()),
			burst.New(burst.DefaultConfig()),
		},
	}
}

// Name returns the pattern identifier.
func (r *Rule) Name() string { return "phased" }

// Phase returns the name of the currently active sub-rule.
func (r *Rule) Phase() string { return r.phases[r.active].Name() }

// Reset rewinds the cycle to its first phase and rebuilds its entities.
func (r *Rule) Reset(rng *core.RNG, size int) {
	r.active = 0
	r.started = false
	for _, p := range r.phases {
		p.Reset(rng, size)
	}
}

// Advance switches phase on schedule and advances the active sub-rule.
func (r *Rule) Advance(s *core.Step) {
	phase := (s.Index / r.cfg.PhaseDuration) % len(r.phases)
	if phase != r.active || !r.started {
		r.active = phase
		r.started = true
		// Entering a phase rebuilds its entity population.
		r.phases[r.active].Reset(s.RNG, s.Size)
	}
	r.phases[r.active].Advance(s)
}

// Bias delegates to the active sub-rule.
func (r *Rule) Bias(x, y int, s *core.Step) float64 {
	return r.phases[r.active].Bias(x, y, s)
}

// Finalize delegates to the active sub-rule.
func (r *Rule) Finalize(s *core.Step) {
	r.phases[r.active].Finalize(s)
}

// SpikeType delegates to the active sub-rule.
func (r *Rule) SpikeType(x, y int, s *core.Step) core.SpikeType {
	return r.phases[r.active].SpikeType(x, y, s)
}

func init() {
	core.Register("phased", func(cfg map[string]string) core.Rule {
		return New(FromMap(cfg))
	})
}
