//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"terrain-ca/pkg/terrain"
)

// Overlay draws the generation/population/fingerprint readout over the grid.
type Overlay struct {
	visible bool
}

// NewOverlay constructs a visible overlay.
func NewOverlay() *Overlay {
	return &Overlay{visible: true}
}

// Update toggles visibility with Tab.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the stats line in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image, stats terrain.Stats, running bool) {
	if !o.visible {
		return
	}
	state := "paused"
	if running {
		state = "running"
	}
	line := fmt.Sprintf("gen %d  pop %d  fp %08x  %s",
		stats.Generation, stats.Population, stats.Fingerprint, state)
	face := basicfont.Face7x13
	text.Draw(screen, line, face, 5, 16, color.RGBA{R: 20, G: 20, B: 20, A: 255})
	text.Draw(screen, line, face, 4, 15, color.RGBA{R: 225, G: 225, B: 235, A: 255})
}
