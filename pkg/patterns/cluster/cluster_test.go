package cluster

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

func TestResetSeedsExactlyOneCenter(t *testing.T) {
	r := New(DefaultConfig())
	r.Reset(core.NewRNG(5), 4)
	if got := len(r.Clusters()); got != 1 {
		t.Fatalf("expected exactly one center after reset, got %d", got)
	}
	c := r.Clusters()[0]
	if c.X < 0 || c.X > 3 || c.Y < 0 || c.Y > 3 {
		t.Fatalf("seeded center out of bounds: %+v", c)
	}
}

func TestAdvanceNeverLeavesZeroCenters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DecayRate = 0.1 // decay almost everything away each frame
	r := New(cfg)
	rng := core.NewRNG(11)
	r.Reset(rng, 4)
	for i := 0; i < 50; i++ {
		s := newStep(4, rng)
		s.Index = i
		r.Advance(s)
		if len(r.Clusters()) == 0 {
			t.Fatalf("frame %d: variant must never run without a center", i)
		}
	}
}

func TestCapHolds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = 1
	cfg.DecayRate = 1
	r := New(cfg)
	rng := core.NewRNG(3)
	r.Reset(rng, 4)
	for i := 0; i < 100; i++ {
		r.Advance(newStep(4, rng))
		if got := len(r.Clusters()); got > cfg.MaxClusters {
			t.Fatalf("frame %d: %d centers exceeds cap %d", i, got, cfg.MaxClusters)
		}
	}
}

func TestBiasFallsOffWithDistance(t *testing.T) {
	r := New(DefaultConfig())
	r.clusters = []Cluster{{X: 0, Y: 0, Strength: 1, Radius: 2}}
	s := newStep(4, core.NewRNG(1))
	at := r.Bias(0, 0, s)
	near := r.Bias(1, 0, s)
	far := r.Bias(3, 3, s)
	if at <= near {
		t.Fatalf("bias should fall off with distance: at=%f near=%f", at, near)
	}
	if far != 0 {
		t.Fatalf("cells beyond the radius get no bias, got %f", far)
	}
}

func TestEngineInvariantsUnderClusterRule(t *testing.T) {
	e := core.New(New(DefaultConfig()), 4, 42)
	for i, f := range e.Generate(30) {
		for _, row := range f.Cells {
			for _, v := range row {
				if v < 0 || v > 1 {
					t.Fatalf("frame %d: cell value out of range: %f", i, v)
				}
			}
		}
	}
}
