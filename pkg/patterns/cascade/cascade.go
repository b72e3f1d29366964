// Package cascade implements the propagating-overlay pattern. A cell
// crossing the seed threshold plants a cascade at its coordinate; the
// cascade fans out orthogonally on its first tick, fades linearly over a
// fixed age and overlays max(cell, contribution) while alive.
package cascade

import (
	"strconv"

	"neurogrid/pkg/core"
)

// Cascade is one live overlay entity.
type Cascade struct {
	X        int
	Y        int
	Age      int
	Strength float64
}

// Config holds the cascade pattern tunables.
type Config struct {
	MaxCascades   int
	MaxAge        int
	SeedThreshold float64
	ChildFactor   float64
	BaseChance    float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MaxCascades:   8,
		MaxAge:        3,
		SeedThreshold: 0.8,
		ChildFactor:   0.6,
		BaseChance:    0.04,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["max_cascades"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxCascades = parsed
		}
	}
	if v, ok := cfg["max_age"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxAge = parsed
		}
	}
	if v, ok := cfg["seed_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.SeedThreshold = parsed
		}
	}
	if v, ok := cfg["base_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.BaseChance = parsed
		}
	}
	return c
}

// Rule is the cascade transition rule.
type Rule struct {
	cfg      Config
	cascades []Cascade
}

// New returns a cascade rule with the provided configuration.
func New(cfg Config) *Rule {
	return &Rule{cfg: cfg}
}

// Name returns the pattern identifier.
func (r *Rule) Name() string { return "cascade" }

// Cascades exposes the live entities, for inspection and continuation.
func (r *Rule) Cascades() []Cascade { return r.cascades }

// SetCascades replaces the entity population, used when threading a
// prior run's final entities into a new engine.
func (r *Rule) SetCascades(cs []Cascade) {
	r.cascades = append(r.cascades[:0], cs...)
	r.enforceCap()
}

// Seed plants a cascade at (x, y) with the given strength at age 0.
func (r *Rule) Seed(x, y int, strength float64) {
	r.cascades = append(r.cascades, Cascade{X: x, Y: y, Strength: core.Clamp01(strength)})
	r.enforceCap()
}

// Reset drops all cascades.
func (r *Rule) Reset(*core.RNG, int) {
	r.cascades = r.cascades[:0]
}

// Advance ages cascades, fans newborns out orthogonally and drops the
// aged-out.
func (r *Rule) Advance(s *core.Step) {
	var children []Cascade
	kept := r.cascades[:0]
	for _, c := range r.cascades {
		if c.Age == 0 {
			// Propagation happens exactly once, on the first tick.
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := c.X+d[0], c.Y+d[1]
				if nx < 0 || nx >= s.Size || ny < 0 || ny >= s.Size {
					continue
				}
				children = append(children, Cascade{X: nx, Y: ny, Age: 1, Strength: c.Strength * r.cfg.ChildFactor})
			}
		}
		c.Age++
		if c.Age >= r.cfg.MaxAge {
			continue
		}
		kept = append(kept, c)
	}
	r.cascades = append(kept, children...)
	r.enforceCap()
}

// Bias returns the ignition floor that keeps the automaton seeding new
// cascades from a quiet grid.
func (r *Rule) Bias(x, y int, s *core.Step) float64 {
	return r.cfg.BaseChance
}

// Finalize overlays live cascades onto the drawn cells, emits their
// spikes and seeds new cascades from threshold-crossing cells.
func (r *Rule) Finalize(s *core.Step) {
	for _, c := range r.cascades {
		contribution := c.Strength * (1 - float64(c.Age)/float64(r.cfg.MaxAge))
		if contribution <= 0 {
			continue
		}
		if cur := s.Next.At(c.X, c.Y); contribution > cur {
			s.Next.Set(c.X, c.Y, contribution)
		}
		s.Spikes = append(s.Spikes, core.Spike{
			X: c.X, Y: c.Y,
			Intensity: contribution,
			Type:      core.SpikeCascade,
			Age:       c.Age,
		})
	}

	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			v := s.Next.At(x, y)
			if v <= r.cfg.SeedThreshold || r.liveAt(x, y) {
				continue
			}
			r.Seed(x, y, v)
			s.Spikes = append(s.Spikes, core.Spike{X: x, Y: y, Intensity: v, Type: core.SpikeCascade})
		}
	}
}

// SpikeType labels residual threshold crossings as cascades too.
func (r *Rule) SpikeType(x, y int, s *core.Step) core.SpikeType {
	return core.SpikeCascade
}

func (r *Rule) liveAt(x, y int) bool {
	for _, c := range r.cascades {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

// enforceCap evicts the oldest, then weakest, cascades until the cap
// holds.
func (r *Rule) enforceCap() {
	for len(r.cascades) > r.cfg.MaxCascades {
		evict := 0
		for i, c := range r.cascades {
			e := r.cascades[evict]
			if c.Age > e.Age || (c.Age == e.Age && c.Strength < e.Strength) {
				evict = i
			}
		}
		r.cascades = append(r.cascades[:evict], r.cascades[evict+1:]...)
	}
}

func init() {
	core.Register("cascade", func(cfg map[string]string) core.Rule {
		return New(FromMap(cfg))
	})
}
