//go:build !ebiten

package ui

// Overlay is a placeholder for the headless build.
type Overlay struct{}

// NewOverlay constructs an inert overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Update is a no-op placeholder.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder to satisfy the GUI call shape.
func (o *Overlay) Draw(any, []string) {}
