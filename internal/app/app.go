//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"neurogrid/internal/render"
	"neurogrid/internal/ui"
	"neurogrid/pkg/core"
)

// Game replays generated frame batches through ebiten. When a batch is
// exhausted the engine generates the next one, so the viewer shows the
// continuation behavior the production renderer relies on.
type Game struct {
	engine  *core.Engine
	painter *render.FramePainter
	overlay *ui.Overlay
	clock   *core.FixedStep

	frames []core.Frame
	idx    int
	batch  int

	onColor  color.RGBA
	offColor color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided engine.
func New(engine *core.Engine, cfg *Config) *Game {
	g := &Game{
		engine:   engine,
		painter:  render.NewFramePainter(engine.Size()),
		overlay:  ui.NewOverlay(),
		clock:    core.NewFixedStep(cfg.FPS),
		batch:    cfg.Batch,
		onColor:  color.RGBA{R: 120, G: 200, B: 255, A: 255},
		offColor: color.RGBA{R: 8, G: 12, B: 24, A: 255},
		scale:    cfg.Scale,
		seed:     cfg.Seed,
	}
	if g.batch <= 0 {
		g.batch = 12
	}
	g.frames = engine.Generate(g.batch)
	return g
}

// Reset reinitializes the engine with the provided seed and regenerates
// the first batch.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.engine.Reset(seed)
	g.frames = g.engine.Generate(g.batch)
	g.idx = 0
	g.tickOnce = false
}

// Update handles input and advances frame replay.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.overlay.Update()

	// The clock runs even while paused so unpausing does not replay a
	// burst of accumulated frames.
	due := g.clock.ShouldStep()
	if (due && !g.paused) || g.tickOnce {
		g.advance()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) advance() {
	g.idx++
	if g.idx >= len(g.frames) {
		g.frames = g.engine.Generate(g.batch)
		g.idx = 0
	}
}

// Draw renders the current frame and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if len(g.frames) == 0 {
		return
	}
	frame := g.frames[g.idx]
	g.painter.Blit(screen, frame, g.scale, g.onColor, g.offColor)
	g.overlay.Draw(screen, g.overlayLines(frame))
}

func (g *Game) overlayLines(frame core.Frame) []string {
	lines := []string{
		fmt.Sprintf("pattern: %s", g.engine.Rule().Name()),
		fmt.Sprintf("generation %d frame %d/%d", g.engine.Generation(), g.idx+1, len(g.frames)),
		fmt.Sprintf("spikes %d connections %d", len(frame.Spikes), len(frame.Connections)),
	}
	if provider, ok := g.engine.Rule().(core.ParameterProvider); ok {
		for _, group := range provider.Parameters().Groups {
			for _, p := range group.Params {
				lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
			}
		}
	}
	return lines
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	n := g.engine.Size()
	return n * g.scale, n * g.scale
}
