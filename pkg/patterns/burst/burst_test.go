package burst

import (
	"testing"

	"neurogrid/pkg/core"
)

func TestZeroStartIsNotSilent(t *testing.T) {
	e := core.New(New(DefaultConfig()), 4, 42)
	frames := e.Generate(12)
	if len(frames) != 12 {
		t.Fatalf("expected 12 frames, got %d", len(frames))
	}
	for _, f := range frames {
		for _, row := range f.Cells {
			for _, v := range row {
				if v > 0 {
					return
				}
			}
		}
	}
	t.Fatal("burst ignition floor should light at least one cell within 12 frames")
}

func TestBiasIsIgnitionFloor(t *testing.T) {
	r := New(Config{BaseChance: 0.1})
	s := &core.Step{Size: 4, RNG: core.NewRNG(1)}
	if got := r.Bias(2, 3, s); got != 0.1 {
		t.Fatalf("expected constant bias 0.1, got %f", got)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"base_chance": "0.25"})
	if c.BaseChance != 0.25 {
		t.Fatalf("expected base_chance 0.25, got %f", c.BaseChance)
	}
	c = FromMap(map[string]string{"base_chance": "bogus"})
	if c.BaseChance != DefaultConfig().BaseChance {
		t.Fatalf("invalid value should keep the default, got %f", c.BaseChance)
	}
	if c := FromMap(nil); c != DefaultConfig() {
		t.Fatalf("nil map should yield defaults, got %+v", c)
	}
}
