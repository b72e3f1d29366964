package render

import (
	"image/color"
	"testing"

	"neurogrid/pkg/core"
)

func TestFillActivationRGBAEndpoints(t *testing.T) {
	on := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	off := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	cells := [][]float64{
		{0, 1},
		{0.5, 0},
	}
	buf := make([]byte, 4*4)
	FillActivationRGBA(buf, cells, on, off)

	if buf[0] != off.R || buf[1] != off.G || buf[2] != off.B {
		t.Fatalf("cell 0 should be the off color, got %v", buf[:4])
	}
	if buf[4] != on.R || buf[5] != on.G || buf[6] != on.B {
		t.Fatalf("cell 1 should be the on color, got %v", buf[4:8])
	}
	// Midpoint blends between the two.
	if buf[8] <= off.R || buf[8] >= on.R {
		t.Fatalf("midpoint red should sit between %d and %d, got %d", off.R, on.R, buf[8])
	}
}

func TestFillActivationRGBAShortBuffer(t *testing.T) {
	cells := [][]float64{{1, 1, 1, 1}}
	buf := make([]byte, 8)
	// Must not panic when the buffer only covers part of the grid.
	FillActivationRGBA(buf, cells, color.RGBA{R: 255}, color.RGBA{})
	if buf[0] != 255 || buf[4] != 255 {
		t.Fatalf("covered cells should still be written, got %v", buf)
	}
}

func TestSpikeColorsAreDistinct(t *testing.T) {
	types := []core.SpikeType{core.SpikePulse, core.SpikeStar, core.SpikeCascade, core.SpikeQuantum}
	seen := map[color.RGBA]core.SpikeType{}
	for _, st := range types {
		c := SpikeColor(st)
		if prev, dup := seen[c]; dup {
			t.Fatalf("spike types %q and %q share color %v", prev, st, c)
		}
		seen[c] = st
	}
}
