package cascade

import (
	"math"
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

func TestCascadeLifetimeSchedule(t *testing.T) {
	r := New(DefaultConfig())
	rng := core.NewRNG(1)

	// Age 0: full-strength overlay and spike.
	r.Seed(1, 1, 0.9)
	s := newStep(4, rng)
	r.Finalize(s)
	if got := s.Next.At(1, 1); math.Abs(got-0.9) > 1e-12 {
		t.Fatalf("age 0 overlay should be the seed strength, got %f", got)
	}
	sp := spikeAt(t, s.Spikes, 1, 1)
	if sp.Type != core.SpikeCascade {
		t.Fatalf("expected cascade spike, got %q", sp.Type)
	}
	if math.Abs(sp.Intensity-0.9) > 1e-12 {
		t.Fatalf("age 0 spike intensity should equal seed strength, got %f", sp.Intensity)
	}

	// Age 1: contribution decays to s*(1 - 1/3).
	r.Advance(newStep(4, rng))
	s = newStep(4, rng)
	r.Finalize(s)
	want := 0.9 * (1 - 1.0/3.0)
	sp = spikeAt(t, s.Spikes, 1, 1)
	if math.Abs(sp.Intensity-want) > 1e-12 {
		t.Fatalf("age 1 contribution should be %f, got %f", want, sp.Intensity)
	}
	if sp.Age != 1 {
		t.Fatalf("expected age 1, got %d", sp.Age)
	}

	// Age 2: one third left. Age 3: gone.
	r.Advance(newStep(4, rng))
	s = newStep(4, rng)
	r.Finalize(s)
	want = 0.9 * (1 - 2.0/3.0)
	sp = spikeAt(t, s.Spikes, 1, 1)
	if math.Abs(sp.Intensity-want) > 1e-12 {
		t.Fatalf("age 2 contribution should be %f, got %f", want, sp.Intensity)
	}

	r.Advance(newStep(4, rng))
	for _, c := range r.Cascades() {
		if c.X == 1 && c.Y == 1 && c.Age >= 3 {
			t.Fatalf("cascade should be absent by age 3, still found %+v", c)
		}
	}
}

func TestFirstTickPropagatesOrthogonally(t *testing.T) {
	r := New(DefaultConfig())
	r.Seed(1, 1, 0.9)
	r.Advance(newStep(4, core.NewRNG(1)))

	coords := map[[2]int]bool{}
	for _, c := range r.Cascades() {
		coords[[2]int{c.X, c.Y}] = true
		if c.X == 1 && c.Y == 1 {
			continue
		}
		if math.Abs(c.Strength-0.9*DefaultConfig().ChildFactor) > 1e-12 {
			t.Fatalf("child strength should be scaled by %f, got %f", DefaultConfig().ChildFactor, c.Strength)
		}
		if c.Age != 1 {
			t.Fatalf("children start at age 1, got %d", c.Age)
		}
	}
	for _, want := range [][2]int{{1, 1}, {0, 1}, {2, 1}, {1, 0}, {1, 2}} {
		if !coords[want] {
			t.Fatalf("expected cascade at %v, have %v", want, coords)
		}
	}

	// A second tick must not propagate again.
	before := len(r.Cascades())
	r.Advance(newStep(4, core.NewRNG(2)))
	if got := len(r.Cascades()); got > before {
		t.Fatalf("propagation is first-tick only: %d -> %d cascades", before, got)
	}
}

func TestPropagationRespectsBounds(t *testing.T) {
	r := New(DefaultConfig())
	r.Seed(0, 0, 0.9)
	r.Advance(newStep(4, core.NewRNG(1)))
	for _, c := range r.Cascades() {
		if c.X < 0 || c.X >= 4 || c.Y < 0 || c.Y >= 4 {
			t.Fatalf("cascade escaped the grid: %+v", c)
		}
	}
	// Corner seed keeps itself plus two in-bounds children.
	if got := len(r.Cascades()); got != 3 {
		t.Fatalf("expected 3 cascades from a corner seed, got %d", got)
	}
}

func TestCapEvictsOldestFirst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCascades = 3
	r := New(cfg)
	r.SetCascades([]Cascade{
		{X: 0, Y: 0, Age: 2, Strength: 0.9},
		{X: 1, Y: 0, Age: 1, Strength: 0.5},
		{X: 2, Y: 0, Age: 0, Strength: 0.7},
	})
	r.Seed(3, 0, 0.4)
	cs := r.Cascades()
	if len(cs) != 3 {
		t.Fatalf("cap of 3 not enforced, got %d", len(cs))
	}
	for _, c := range cs {
		if c.X == 0 && c.Y == 0 {
			t.Fatalf("the oldest cascade should have been evicted, still have %+v", c)
		}
	}
}

func TestThresholdCellSeedsCascade(t *testing.T) {
	r := New(DefaultConfig())
	s := newStep(4, core.NewRNG(1))
	s.Next.Set(2, 2, 0.85)
	r.Finalize(s)
	if len(r.Cascades()) != 1 {
		t.Fatalf("expected one seeded cascade, got %d", len(r.Cascades()))
	}
	c := r.Cascades()[0]
	if c.X != 2 || c.Y != 2 || c.Age != 0 {
		t.Fatalf("unexpected seed %+v", c)
	}
	if math.Abs(c.Strength-0.85) > 1e-12 {
		t.Fatalf("seed strength should match the cell value, got %f", c.Strength)
	}
	sp := spikeAt(t, s.Spikes, 2, 2)
	if sp.Type != core.SpikeCascade {
		t.Fatalf("expected cascade spike, got %q", sp.Type)
	}
}

func TestContinuationThreading(t *testing.T) {
	first := New(DefaultConfig())
	first.Seed(1, 2, 0.8)
	first.Advance(newStep(4, core.NewRNG(1)))

	second := New(DefaultConfig())
	second.SetCascades(first.Cascades())
	if len(second.Cascades()) != len(first.Cascades()) {
		t.Fatalf("threaded %d cascades, got %d", len(first.Cascades()), len(second.Cascades()))
	}
}

func spikeAt(t *testing.T, spikes []core.Spike, x, y int) core.Spike {
	t.Helper()
	for _, sp := range spikes {
		if sp.X == x && sp.Y == y {
			return sp
		}
	}
	t.Fatalf("no spike at (%d,%d) in %+v", x, y, spikes)
	return core.Spike{}
}
