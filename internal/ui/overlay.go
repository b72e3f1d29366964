//go:build ebiten

package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws run information on top of the frame view.
type Overlay struct {
	visible bool
}

// NewOverlay constructs a new overlay instance, visible by default.
func NewOverlay() *Overlay {
	return &Overlay{visible: true}
}

// Update toggles overlay visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the info lines in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image, lines []string) {
	if !o.visible || len(lines) == 0 {
		return
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}
