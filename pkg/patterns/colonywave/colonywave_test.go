package colonywave

import (
	"testing"

	"neurogrid/pkg/core"
)

func newStep(size int, rng *core.RNG) *core.Step {
	return &core.Step{
		Size: size,
		Prev: core.NewGrid(size),
		Next: core.NewGrid(size),
		RNG:  rng,
	}
}

func TestResetFoundsOneColony(t *testing.T) {
	r := New(DefaultConfig())
	r.Reset(core.NewRNG(9), 4)
	if got := len(r.Colonies()); got != 1 {
		t.Fatalf("expected one founding colony, got %d", got)
	}
	if len(r.Waves()) != 0 {
		t.Fatalf("no waves should exist before the first emission, got %d", len(r.Waves()))
	}
}

func TestColonyEmitsWaveOnSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = 0
	cfg.SplitChance = 0
	r := New(cfg)
	rng := core.NewRNG(4)
	r.Reset(rng, 4)
	for i := 0; i < cfg.EmitInterval-1; i++ {
		r.Advance(newStep(4, rng))
		if len(r.Waves()) != 0 {
			t.Fatalf("wave emitted before the interval elapsed, at advance %d", i+1)
		}
	}
	r.Advance(newStep(4, rng))
	if len(r.Waves()) != 1 {
		t.Fatalf("expected one wave after %d advances, got %d", cfg.EmitInterval, len(r.Waves()))
	}
}

func TestWavesExpandAndDecay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = 0
	cfg.SplitChance = 0
	r := New(cfg)
	rng := core.NewRNG(4)
	r.Reset(rng, 4)
	for i := 0; i < cfg.EmitInterval; i++ {
		r.Advance(newStep(4, rng))
	}
	w0 := r.Waves()[0]
	r.Advance(newStep(4, rng))
	var w1 *Wave
	for i := range r.Waves() {
		if r.Waves()[i].Radius > w0.Radius {
			w1 = &r.Waves()[i]
		}
	}
	if w1 == nil {
		t.Fatalf("the wave should have expanded beyond %f", w0.Radius)
	}
	if w1.Strength >= w0.Strength {
		t.Fatalf("wave strength should decay: %f -> %f", w0.Strength, w1.Strength)
	}
}

func TestEntityCapsHold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = 1
	cfg.SplitChance = 1
	cfg.EmitInterval = 1
	r := New(cfg)
	rng := core.NewRNG(8)
	r.Reset(rng, 4)
	for i := 0; i < 80; i++ {
		r.Advance(newStep(4, rng))
		if got := len(r.Colonies()); got > cfg.MaxColonies {
			t.Fatalf("frame %d: %d colonies exceeds cap %d", i, got, cfg.MaxColonies)
		}
		if got := len(r.Waves()); got > cfg.MaxWaves {
			t.Fatalf("frame %d: %d waves exceeds cap %d", i, got, cfg.MaxWaves)
		}
		if len(r.Colonies()) == 0 {
			t.Fatalf("frame %d: variant must never run without a colony", i)
		}
	}
}

func TestAnnulusBias(t *testing.T) {
	cfg := DefaultConfig()
	r := New(cfg)
	r.waves = []Wave{{X: 0, Y: 0, Radius: 2, Strength: 0.8}}
	s := newStep(6, core.NewRNG(1))
	onRing := r.Bias(2, 0, s)
	offRing := r.Bias(5, 5, s)
	if onRing <= cfg.BaseChance {
		t.Fatalf("cell on the ring should receive wave influence, got %f", onRing)
	}
	if offRing != cfg.BaseChance {
		t.Fatalf("cell far from the ring should only see the base chance, got %f", offRing)
	}
}

func TestEngineInvariantsUnderColonyWaveRule(t *testing.T) {
	e := core.New(New(DefaultConfig()), 4, 123)
	frames := e.Generate(24)
	if len(frames) != 24 {
		t.Fatalf("expected 24 frames, got %d", len(frames))
	}
	for i, f := range frames {
		for _, row := range f.Cells {
			for _, v := range row {
				if v < 0 || v > 1 {
					t.Fatalf("frame %d: cell value out of range: %f", i, v)
				}
			}
		}
	}
}
