// Package cluster implements the drifting influence-center pattern.
// A small capped set of Gaussian-like centers additively boosts cells
// within their radius; centers drift each frame, decay in strength and
// are respawned from high-activity cells or at random.
package cluster

import (
	"fmt"
	"strconv"

	"neurogrid/pkg/core"
)

// Cluster is one influence center. Coordinates are continuous so drift
// can move a center between cells.
type Cluster struct {
	X        float64
	Y        float64
	Strength float64
	Radius   float64
}

// Config holds the cluster pattern tunables.
type Config struct {
	MaxClusters     int
	SpawnChance     float64
	DriftStep       float64
	DecayRate       float64
	MinStrength     float64
	RadiusMin       float64
	RadiusMax       float64
	InfluenceWeight float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MaxClusters:     4,
		SpawnChance:     0.15,
		DriftStep:       0.6,
		DecayRate:       0.94,
		MinStrength:     0.15,
		RadiusMin:       1.0,
		RadiusMax:       2.2,
		InfluenceWeight: 0.35,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["max_clusters"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxClusters = parsed
		}
	}
	if v, ok := cfg["spawn_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.SpawnChance = parsed
		}
	}
	if v, ok := cfg["drift_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.DriftStep = parsed
		}
	}
	if v, ok := cfg["decay_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			c.DecayRate = parsed
		}
	}
	if v, ok := cfg["influence_weight"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.InfluenceWeight = parsed
		}
	}
	return c
}

// Rule is the cluster transition rule.
type Rule struct {
	cfg      Config
	clusters []Cluster
}

// New returns a cluster rule with the provided configuration.
func New(cfg Config) *Rule {
	return &Rule{cfg: cfg}
}

// Name returns the pattern identifier.
func (r *Rule) Name() string { return "cluster" }

// Clusters exposes the live influence centers.
func (r *Rule) Clusters() []Cluster { return r.clusters }

// Reset drops all centers and seeds a single one at a random location.
func (r *Rule) Reset(rng *core.RNG, size int) {
	r.clusters = r.clusters[:0]
	r.spawnRandom(rng, size)
}

// Advance drifts, decays and respawns centers for the coming frame.
func (r *Rule) Advance(s *core.Step) {
	kept := r.clusters[:0]
	for _, c := range r.clusters {
		c.Strength *= r.cfg.DecayRate
		if c.Strength < r.cfg.MinStrength {
			continue
		}
		c.X = clampCoord(c.X+s.RNG.Range(-r.cfg.DriftStep, r.cfg.DriftStep), s.Size)
		c.Y = clampCoord(c.Y+s.RNG.Range(-r.cfg.DriftStep, r.cfg.DriftStep), s.Size)
		kept = append(kept, c)
	}
	r.clusters = kept

	if len(r.clusters) < r.cfg.MaxClusters && s.RNG.Chance(r.cfg.SpawnChance) {
		if x, y, ok := hottestCell(s.Prev, s.Size); ok {
			r.spawnAt(s.RNG, float64(x), float64(y))
		} else {
			r.spawnRandom(s.RNG, s.Size)
		}
	}

	// A variant that runs on centers must never run without one.
	if len(r.clusters) == 0 {
		r.spawnRandom(s.RNG, s.Size)
	}
	r.enforceCap()
}

// Bias sums the influence of all centers covering (x, y), with linear
// falloff towards each center's radius.
func (r *Rule) Bias(x, y int, s *core.Step) float64 {
	bias := 0.0
	for _, c := range r.clusters {
		dx := float64(x) - c.X
		dy := float64(y) - c.Y
		d2 := dx*dx + dy*dy
		if d2 > c.Radius*c.Radius {
			continue
		}
		falloff := 1 - d2/(c.Radius*c.Radius)
		bias += c.Strength * falloff * r.cfg.InfluenceWeight
	}
	return bias
}

// Finalize is a no-op; centers influence cells only through Bias.
func (r *Rule) Finalize(*core.Step) {}

// SpikeType labels center-driven activations as stars and the rest as
// pulses.
func (r *Rule) SpikeType(x, y int, s *core.Step) core.SpikeType {
	if r.Bias(x, y, s) > 0.1 {
		return core.SpikeStar
	}
	return core.SpikePulse
}

// Parameters exposes the cluster tunables for the viewer overlay.
func (r *Rule) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "cluster",
		Params: []core.Parameter{
			{Key: "max_clusters", Label: "Max clusters", Type: core.ParamTypeInt, Value: strconv.Itoa(r.cfg.MaxClusters)},
			{Key: "spawn_chance", Label: "Spawn chance", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.2f", r.cfg.SpawnChance)},
			{Key: "decay_rate", Label: "Decay rate", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.2f", r.cfg.DecayRate)},
			{Key: "influence_weight", Label: "Influence", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.2f", r.cfg.InfluenceWeight)},
		},
	}}}
}

func (r *Rule) spawnRandom(rng *core.RNG, size int) {
	r.spawnAt(rng, float64(rng.IntN(size)), float64(rng.IntN(size)))
}

func (r *Rule) spawnAt(rng *core.RNG, x, y float64) {
	r.clusters = append(r.clusters, Cluster{
		X:        x,
		Y:        y,
		Strength: rng.Range(0.5, 1.0),
		Radius:   rng.Range(r.cfg.RadiusMin, r.cfg.RadiusMax),
	})
	r.enforceCap()
}

// enforceCap evicts the weakest centers until the cap holds.
func (r *Rule) enforceCap() {
	for len(r.clusters) > r.cfg.MaxClusters {
		weakest := 0
		for i, c := range r.clusters {
			if c.Strength < r.clusters[weakest].Strength {
				weakest = i
			}
		}
		r.clusters = append(r.clusters[:weakest], r.clusters[weakest+1:]...)
	}
}

func hottestCell(g *core.Grid, size int) (int, int, bool) {
	bestX, bestY, best := 0, 0, 0.0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if v := g.At(x, y); v > best {
				bestX, bestY, best = x, y, v
			}
		}
	}
	return bestX, bestY, best > 0.5
}

func clampCoord(v float64, size int) float64 {
	if v < 0 {
		return 0
	}
	if max := float64(size - 1); v > max {
		return max
	}
	return v
}

func init() {
	core.Register("cluster", func(cfg map[string]string) core.Rule {
		return New(FromMap(cfg))
	})
}
