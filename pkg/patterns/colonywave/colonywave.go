// Package colonywave implements the colony/wave pattern. Colonies are
// circular influence sources that periodically emit an expanding ring;
// rings boost cells within a thin annulus, can found new colonies where
// they pass, and strong colonies occasionally split.
package colonywave

import (
	"fmt"
	"math"
	"strconv"

	"neurogrid/pkg/core"
)

// Colony is a persistent circular influence source.
type Colony struct {
	X        float64
	Y        float64
	Strength float64
	Radius   float64
	Age      int
}

// Wave is a traveling ring emitted by a colony.
type Wave struct {
	X        float64
	Y        float64
	Radius   float64
	Strength float64
}

// Config holds the colony/wave pattern tunables.
type Config struct {
	MaxColonies       int
	MaxWaves          int
	EmitInterval      int
	ColonyDecay       float64
	ColonyMinStrength float64
	SplitThreshold    float64
	SplitChance       float64
	WaveSpeed         float64
	WaveDecay         float64
	WaveMinStrength   float64
	AnnulusWidth      float64
	SpawnChance       float64
	InfluenceWeight   float64
	BaseChance        float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MaxColonies:       5,
		MaxWaves:          6,
		EmitInterval:      3,
		ColonyDecay:       0.97,
		ColonyMinStrength: 0.2,
		SplitThreshold:    0.8,
		SplitChance:       0.08,
		WaveSpeed:         0.7,
		WaveDecay:         0.85,
		WaveMinStrength:   0.12,
		AnnulusWidth:      0.8,
		SpawnChance:       0.04,
		InfluenceWeight:   0.4,
		BaseChance:        0.02,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["max_colonies"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxColonies = parsed
		}
	}
	if v, ok := cfg["max_waves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxWaves = parsed
		}
	}
	if v, ok := cfg["emit_interval"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.EmitInterval = parsed
		}
	}
	if v, ok := cfg["split_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.SplitChance = parsed
		}
	}
	if v, ok := cfg["wave_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.WaveSpeed = parsed
		}
	}
	if v, ok := cfg["influence_weight"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.InfluenceWeight = parsed
		}
	}
	return c
}

// Rule is the colony/wave transition rule.
type Rule struct {
	cfg      Config
	colonies []Colony
	waves    []Wave
}

// New returns a colony/wave rule with the provided configuration.
func New(cfg Config) *Rule {
	return &Rule{cfg: cfg}
}

// Name returns the pattern identifier.
func (r *Rule) Name() string { return "colonywave" }

// Colonies exposes the live colonies.
func (r *Rule) Colonies() []Colony { return r.colonies }

// Waves exposes the live waves.
func (r *Rule) Waves() []Wave { return r.waves }

// Reset drops all entities and founds a single colony at a random
// location.
func (r *Rule) Reset(rng *core.RNG, size int) {
	r.colonies = r.colonies[:0]
	r.waves = r.waves[:0]
	r.foundColony(rng, float64(rng.IntN(size)), float64(rng.IntN(size)))
}

// Advance decays colonies, emits and expands waves, founds wave-spawned
// colonies and splits strong ones.
func (r *Rule) Advance(s *core.Step) {
	keptColonies := r.colonies[:0]
	for _, c := range r.colonies {
		c.Age++
		c.Strength *= r.cfg.ColonyDecay
		if c.Strength < r.cfg.ColonyMinStrength {
			continue
		}
		if c.Age%r.cfg.EmitInterval == 0 {
			r.waves = append(r.waves, Wave{X: c.X, Y: c.Y, Radius: 0.5, Strength: c.Strength})
		}
		keptColonies = append(keptColonies, c)
	}
	r.colonies = keptColonies

	var children []Colony
	for i := range r.colonies {
		c := r.colonies[i]
		if c.Strength > r.cfg.SplitThreshold && s.RNG.Chance(r.cfg.SplitChance) {
			r.colonies[i].Strength *= 0.7
			children = append(children, Colony{
				X:        clampCoord(c.X+s.RNG.Range(-1.5, 1.5), s.Size),
				Y:        clampCoord(c.Y+s.RNG.Range(-1.5, 1.5), s.Size),
				Strength: c.Strength * 0.55,
				Radius:   c.Radius * 0.8,
			})
		}
	}
	r.colonies = append(r.colonies, children...)

	maxRadius := float64(s.Size) * 1.5
	keptWaves := r.waves[:0]
	for _, w := range r.waves {
		w.Radius += r.cfg.WaveSpeed
		w.Strength *= r.cfg.WaveDecay
		if w.Strength < r.cfg.WaveMinStrength || w.Radius > maxRadius {
			continue
		}
		// A passing wave can found a colony somewhere on its ring.
		if s.RNG.Chance(r.cfg.SpawnChance) {
			angle := s.RNG.Range(0, 2*math.Pi)
			r.colonies = append(r.colonies, Colony{
				X:        clampCoord(w.X+math.Cos(angle)*w.Radius, s.Size),
				Y:        clampCoord(w.Y+math.Sin(angle)*w.Radius, s.Size),
				Strength: s.RNG.Range(0.5, 1.0),
				Radius:   s.RNG.Range(1.0, 2.0),
			})
		}
		keptWaves = append(keptWaves, w)
	}
	r.waves = keptWaves

	if len(r.colonies) == 0 {
		r.foundColony(s.RNG, float64(s.RNG.IntN(s.Size)), float64(s.RNG.IntN(s.Size)))
	}
	r.enforceCaps()
}

// Bias combines colony proximity with wave annulus influence.
func (r *Rule) Bias(x, y int, s *core.Step) float64 {
	bias := r.cfg.BaseChance
	fx, fy := float64(x), float64(y)
	for _, c := range r.colonies {
		d := math.Hypot(fx-c.X, fy-c.Y)
		if d > c.Radius {
			continue
		}
		bias += c.Strength * (1 - d/c.Radius) * r.cfg.InfluenceWeight
	}
	for _, w := range r.waves {
		d := math.Hypot(fx-w.X, fy-w.Y)
		if math.Abs(d-w.Radius) > r.cfg.AnnulusWidth {
			continue
		}
		bias += w.Strength * r.cfg.InfluenceWeight
	}
	return bias
}

// Finalize is a no-op; colonies and waves act through Bias only.
func (r *Rule) Finalize(*core.Step) {}

// SpikeType labels colony-driven activations as stars.
func (r *Rule) SpikeType(x, y int, s *core.Step) core.SpikeType {
	return core.SpikeStar
}

// Parameters exposes the colony/wave tunables for the viewer overlay.
func (r *Rule) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "colonywave",
		Params: []core.Parameter{
			{Key: "max_colonies", Label: "Max colonies", Type: core.ParamTypeInt, Value: strconv.Itoa(r.cfg.MaxColonies)},
			{Key: "max_waves", Label: "Max waves", Type: core.ParamTypeInt, Value: strconv.Itoa(r.cfg.MaxWaves)},
			{Key: "emit_interval", Label: "Emit interval", Type: core.ParamTypeInt, Value: strconv.Itoa(r.cfg.EmitInterval)},
			{Key: "wave_speed", Label: "Wave speed", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.2f", r.cfg.WaveSpeed)},
			{Key: "split_chance", Label: "Split chance", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.2f", r.cfg.SplitChance)},
		},
	}}}
}

func (r *Rule) foundColony(rng *core.RNG, x, y float64) {
	r.colonies = append(r.colonies, Colony{
		X:        x,
		Y:        y,
		Strength: rng.Range(0.5, 1.0),
		Radius:   rng.Range(1.0, 2.0),
	})
	r.enforceCaps()
}

// enforceCaps evicts the weakest colonies and waves until both caps hold.
func (r *Rule) enforceCaps() {
	for len(r.colonies) > r.cfg.MaxColonies {
		weakest := 0
		for i, c := range r.colonies {
			if c.Strength < r.colonies[weakest].Strength {
				weakest = i
			}
		}
		r.colonies = append(r.colonies[:weakest], r.colonies[weakest+1:]...)
	}
	for len(r.waves) > r.cfg.MaxWaves {
		weakest := 0
		for i, w := range r.waves {
			if w.Strength < r.waves[weakest].Strength {
				weakest = i
			}
		}
		r.waves = append(r.waves[:weakest], r.waves[weakest+1:]...)
	}
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
	core.Register("colonywave", func(cfg map[string]string) core.Rule {
		return New(FromMap(cfg))
	})
}
