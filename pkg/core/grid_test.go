package core

import "testing"

func TestGridSetClampsValues(t *testing.T) {
	g := NewGrid(4)
	g.Set(1, 1, 1.7)
	if got := g.At(1, 1); got != 1 {
		t.Fatalf("expected overflow clamp to 1, got %f", got)
	}
	g.Set(2, 2, -0.4)
	if got := g.At(2, 2); got != 0 {
		t.Fatalf("expected underflow clamp to 0, got %f", got)
	}
}

func TestGridOutOfRangeAccess(t *testing.T) {
	g := NewGrid(4)
	g.Set(0, 0, 0.5)
	if got := g.At(-1, 0); got != 0 {
		t.Fatalf("out-of-range read should be 0, got %f", got)
	}
	if got := g.At(0, 4); got != 0 {
		t.Fatalf("out-of-range read should be 0, got %f", got)
	}
	// Writes outside the grid must not panic or alias.
	g.Set(4, 4, 0.9)
	g.Set(-1, -1, 0.9)
	for i, v := range g.Values() {
		if v != 0 && i != 0 {
			t.Fatalf("unexpected value %f at index %d", v, i)
		}
	}
}

func TestActiveNeighborsExcludesBoundary(t *testing.T) {
	g := NewGrid(3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Set(x, y, 0.9)
		}
	}
	if got := g.ActiveNeighbors(1, 1, 0.5); got != 8 {
		t.Fatalf("center should see 8 active neighbors, got %d", got)
	}
	if got := g.ActiveNeighbors(0, 0, 0.5); got != 3 {
		t.Fatalf("corner should see 3 active neighbors, got %d", got)
	}
	if got := g.ActiveNeighbors(1, 0, 0.5); got != 5 {
		t.Fatalf("edge should see 5 active neighbors, got %d", got)
	}
}

func TestActiveNeighborsThreshold(t *testing.T) {
	g := NewGrid(3)
	g.Set(0, 1, 0.5)
	g.Set(2, 1, 0.51)
	if got := g.ActiveNeighbors(1, 1, 0.5); got != 1 {
		t.Fatalf("threshold is exclusive, expected 1 active neighbor, got %d", got)
	}
}

func TestMatrixIsACopy(t *testing.T) {
	g := NewGrid(2)
	g.Set(1, 0, 0.25)
	m := g.Matrix()
	if m[0][1] != 0.25 {
		t.Fatalf("matrix should be [y][x] indexed, got %f", m[0][1])
	}
	m[0][1] = 0.9
	if got := g.At(1, 0); got != 0.25 {
		t.Fatalf("mutating the matrix must not touch the grid, got %f", got)
	}
}

func TestCopyFromScales(t *testing.T) {
	src := NewGrid(2)
	src.Set(0, 0, 0.5)
	src.Set(1, 1, 1.0)
	dst := NewGrid(2)
	dst.CopyFrom(src, 0.5)
	if got := dst.At(0, 0); got != 0.25 {
		t.Fatalf("expected 0.25, got %f", got)
	}
	if got := dst.At(1, 1); got != 0.5 {
		t.Fatalf("expected 0.5, got %f", got)
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestRNGChanceExtremes(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 10; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) must never fire")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) must always fire")
		}
	}
}

func TestRNGRangeBounds(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 1000; i++ {
		v := r.Range(0.6, 1.0)
		if v < 0.6 || v >= 1.0 {
			t.Fatalf("Range(0.6, 1.0) produced %f", v)
		}
	}
	if got := r.Range(2, 1); got != 2 {
		t.Fatalf("inverted range should return lo, got %f", got)
	}
}
