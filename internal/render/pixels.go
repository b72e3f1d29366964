package render

import (
	"image/color"

	"neurogrid/pkg/core"
)

// FillActivationRGBA converts an activation matrix into RGBA pixels in
// buf, one cell per pixel in row-major order, blending linearly between
// the off and on colors.
func FillActivationRGBA(buf []byte, cells [][]float64, on, off color.RGBA) {
	i := 0
	for _, row := range cells {
		for _, v := range row {
			if i*4+3 >= len(buf) {
				return
			}
			base := i * 4
			buf[base+0] = lerp(off.R, on.R, v)
			buf[base+1] = lerp(off.G, on.G, v)
			buf[base+2] = lerp(off.B, on.B, v)
			buf[base+3] = lerp(off.A, on.A, v)
			i++
		}
	}
}

// SpikeColor maps a spike type to its display color.
func SpikeColor(t core.SpikeType) color.RGBA {
	switch t {
	case core.SpikeStar:
		return color.RGBA{R: 255, G: 215, B: 64, A: 255}
	case core.SpikeCascade:
		return color.RGBA{R: 255, G: 96, B: 64, A: 255}
	case core.SpikeQuantum:
		return color.RGBA{R: 96, G: 160, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
