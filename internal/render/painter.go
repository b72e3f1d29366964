//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"neurogrid/pkg/core"
)

// FramePainter draws generated frames onto an ebiten screen: cells as
// scaled pixels, connections as lines, spikes as filled circles.
type FramePainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewFramePainter allocates a painter for an n×n grid.
func NewFramePainter(n int) *FramePainter {
	if n <= 0 {
		n = 1
	}
	return &FramePainter{
		n:   n,
		img: ebiten.NewImage(n, n),
		buf: make([]byte, n*n*4),
	}
}

// Blit renders one frame at the given pixel scale.
func (p *FramePainter) Blit(screen *ebiten.Image, frame core.Frame, scale int, on, off color.RGBA) {
	if scale <= 0 {
		scale = 1
	}
	FillActivationRGBA(p.buf, frame.Cells, on, off)
	p.img.WritePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)

	center := func(c int) float32 {
		return (float32(c) + 0.5) * float32(scale)
	}

	for _, conn := range frame.Connections {
		alpha := uint8(core.Clamp01(conn.Strength) * 255)
		clr := color.RGBA{R: 160, G: 220, B: 255, A: alpha}
		vector.StrokeLine(screen,
			center(conn.From.X), center(conn.From.Y),
			center(conn.To.X), center(conn.To.Y),
			float32(scale)/16, clr, true)
	}

	for _, sp := range frame.Spikes {
		radius := float32(scale) * 0.35 * float32(core.Clamp01(sp.Intensity))
		vector.DrawFilledCircle(screen, center(sp.X), center(sp.Y), radius, SpikeColor(sp.Type), true)
	}
}
