// Package quantum implements the amplitude-channel hybrid. Every cell
// carries burst/cluster/cascade amplitudes; a global sinusoidal
// coherence decides per cell whether the update collapses to the
// dominant channel or flickers across a blended average. Amplitudes
// decay multiplicatively, occasionally tunnel upward and can transfer a
// fraction of themselves to a randomly chosen partner cell.
package quantum

import (
	"math"
	"strconv"

	"neurogrid/pkg/core"
)

// Amplitudes is one cell's channel state.
type Amplitudes struct {
	Burst   float64
	Cluster float64
	Cascade float64
	// Entangled lists linear indices of cells this one has transferred
	// amplitude to.
	Entangled []int
}

// Config holds the quantum pattern tunables.
type Config struct {
	CoherenceFreq    float64
	DecayRate        float64
	TunnelChance     float64
	TunnelBoost      float64
	EntangleChance   float64
	TransferFraction float64
	InfluenceWeight  float64
	BaseChance       float64
	// ReinforceRate couples the drawn cell value back into the channel
	// that drove the update.
	ReinforceRate float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		CoherenceFreq:    0.35,
		DecayRate:        0.93,
		TunnelChance:     0.02,
		TunnelBoost:      0.4,
		EntangleChance:   0.03,
		TransferFraction: 0.3,
		InfluenceWeight:  0.45,
		BaseChance:       0.03,
		ReinforceRate:    0.25,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["coherence_freq"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.CoherenceFreq = parsed
		}
	}
	if v, ok := cfg["decay_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			c.DecayRate = parsed
		}
	}
	if v, ok := cfg["tunnel_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.TunnelChance = parsed
		}
	}
	if v, ok := cfg["entangle_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.EntangleChance = parsed
		}
	}
	if v, ok := cfg["base_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.BaseChance = parsed
		}
	}
	return c
}

// Rule is the quantum transition rule.
type Rule struct {
	cfg   Config
	size  int
	cells []Amplitudes
	// coherent marks, per cell and frame, whether the update collapsed
	// to a single channel.
	coherent  []bool
	coherence float64
}

// New returns a quantum rule with the provided configuration.
func New(cfg Config) *Rule {
	return &Rule{cfg: cfg}
}

// Name returns the pattern identifier.
func (r *Rule) Name() string { return "quantum" }

// Coherence returns the global coherence used for the last frame.
func (r *Rule) Coherence() float64 { return r.coherence }

// CoherenceAt returns the global coherence for a given frame index.
func (r *Rule) CoherenceAt(index int) float64 {
	return 0.5 + 0.5*math.Sin(float64(index)*r.cfg.CoherenceFreq)
}

// AmplitudesAt exposes a cell's channel state.
func (r *Rule) AmplitudesAt(x, y int) Amplitudes {
	if x < 0 || x >= r.size || y < 0 || y >= r.size {
		return Amplitudes{}
	}
	return r.cells[y*r.size+x]
}

// Reset rebuilds the per-cell amplitude state with small random values.
func (r *Rule) Reset(rng *core.RNG, size int) {
	r.size = size
	r.cells = make([]Amplitudes, size*size)
	r.coherent = make([]bool, size*size)
	for i := range r.cells {
		r.cells[i] = Amplitudes{
			Burst:   rng.Range(0, 0.3),
			Cluster: rng.Range(0, 0.3),
			Cascade: rng.Range(0, 0.3),
		}
	}
}

// Advance decays amplitudes, applies tunneling jumps and entanglement
// transfers, and fixes the frame's coherence.
func (r *Rule) Advance(s *core.Step) {
	r.coherence = r.CoherenceAt(s.Index)
	total := len(r.cells)
	for i := range r.cells {
		a := &r.cells[i]
		a.Burst *= r.cfg.DecayRate
		a.Cluster *= r.cfg.DecayRate
		a.Cascade *= r.cfg.DecayRate

		if s.RNG.Chance(r.cfg.TunnelChance) {
			switch s.RNG.IntN(3) {
			case 0:
				a.Burst = core.Clamp01(a.Burst + r.cfg.TunnelBoost)
			case 1:
				a.Cluster = core.Clamp01(a.Cluster + r.cfg.TunnelBoost)
			default:
				a.Cascade = core.Clamp01(a.Cascade + r.cfg.TunnelBoost)
			}
		}

		if total > 1 && s.RNG.Chance(r.cfg.EntangleChance) {
			partner := s.RNG.IntN(total - 1)
			if partner >= i {
				partner++
			}
			r.transfer(i, partner)
		}
	}
}

// transfer moves a fraction of the dominant channel from cell i to the
// same channel of the partner cell and records the link.
func (r *Rule) transfer(i, partner int) {
	a := &r.cells[i]
	b := &r.cells[partner]
	amount := 0.0
	switch dominantChannel(*a) {
	case channelBurst:
		amount = a.Burst * r.cfg.TransferFraction
		a.Burst -= amount
		b.Burst = core.Clamp01(b.Burst + amount)
	case channelCluster:
		amount = a.Cluster * r.cfg.TransferFraction
		a.Cluster -= amount
		b.Cluster = core.Clamp01(b.Cluster + amount)
	default:
		amount = a.Cascade * r.cfg.TransferFraction
		a.Cascade -= amount
		b.Cascade = core.Clamp01(b.Cascade + amount)
	}
	a.Entangled = appendLink(a.Entangled, partner)
}

// Bias collapses to the dominant channel under coherence, or averages
// all three channels in the flickering regime.
func (r *Rule) Bias(x, y int, s *core.Step) float64 {
	i := y*r.size + x
	a := r.cells[i]
	coherentDraw := s.RNG.Chance(r.coherence)
	r.coherent[i] = coherentDraw

	var amplitude float64
	if coherentDraw {
		switch dominantChannel(a) {
		case channelBurst:
			amplitude = a.Burst
		case channelCluster:
			amplitude = a.Cluster
		default:
			amplitude = a.Cascade
		}
	} else {
		amplitude = (a.Burst + a.Cluster + a.Cascade) / 3
	}
	return r.cfg.BaseChance + amplitude*r.cfg.InfluenceWeight
}

// Finalize reinforces the channel that drove each firing cell.
func (r *Rule) Finalize(s *core.Step) {
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			v := s.Next.At(x, y)
			if v <= 0 {
				continue
			}
			i := y*r.size + x
			a := &r.cells[i]
			boost := v * r.cfg.ReinforceRate
			if !r.coherent[i] {
				third := boost / 3
				a.Burst = core.Clamp01(a.Burst + third)
				a.Cluster = core.Clamp01(a.Cluster + third)
				a.Cascade = core.Clamp01(a.Cascade + third)
				continue
			}
			switch dominantChannel(*a) {
			case channelBurst:
				a.Burst = core.Clamp01(a.Burst + boost)
			case channelCluster:
				a.Cluster = core.Clamp01(a.Cluster + boost)
			default:
				a.Cascade = core.Clamp01(a.Cascade + boost)
			}
		}
	}
}

// SpikeType labels all quantum threshold crossings as quantum spikes.
func (r *Rule) SpikeType(x, y int, s *core.Step) core.SpikeType {
	return core.SpikeQuantum
}

type channel int

const (
	channelBurst channel = iota
	channelCluster
	channelCascade
)

func dominantChannel(a Amplitudes) channel {
	if a.Burst >= a.Cluster && a.Burst >= a.Cascade {
		return channelBurst
	}
	if a.Cluster >= a.Cascade {
		return channelCluster
	}
	return channelCascade
}

func appendLink(links []int, partner int) []int {
	for _, l := range links {
		if l == partner {
			return links
		}
	}
	return append(links, partner)
}

func init() {
	core.Register("quantum", func(cfg map[string]string) core.Rule {
		return New(FromMap(cfg))
	})
}
