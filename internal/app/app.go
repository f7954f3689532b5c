//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"terrain-ca/internal/config"
	"terrain-ca/internal/core"
	"terrain-ca/internal/render"
	"terrain-ca/internal/ui"
	"terrain-ca/pkg/terrain"
)

// Game adapts the terrain engine to the ebiten.Game interface. The advancer
// goroutine steps the engine; every frame draws from a snapshot buffer, so the
// screen always shows one complete generation regardless of what the advancer
// is doing.
type Game struct {
	cfg      *config.Config
	terrain  *terrain.Terrain
	advancer *Advancer
	painter  *render.GridPainter
	overlay  *ui.Overlay

	palette    []color.RGBA
	background color.RGBA
	cells      []int8
	seed       int64
}

// New constructs a Game from the validated configuration.
func New(cfg *config.Config) (*Game, error) {
	d := cfg.Display
	g := &Game{
		cfg:        cfg,
		painter:    render.NewGridPainter(cfg.Grid.Size),
		overlay:    ui.NewOverlay(),
		palette:    render.AgePalette(int(cfg.Rule.MaxAge), d.Hue, d.Saturation, d.NewBrightness, d.OldBrightness),
		background: color.RGBA{A: 255},
		cells:      make([]int8, cfg.Grid.Size*cfg.Grid.Size),
		seed:       cfg.Grid.Seed,
	}
	if err := g.reset(g.seed); err != nil {
		return nil, err
	}
	return g, nil
}

// reset stops the advancer and rebuilds the terrain from the given seed.
func (g *Game) reset(seed int64) error {
	if g.advancer != nil {
		g.advancer.Stop()
	}
	t, err := terrain.NewSeeded(g.cfg.Grid.Size, g.cfg.Grid.Density, core.NewRNG(seed), g.cfg.TerrainRule())
	if err != nil {
		return err
	}
	g.seed = seed
	g.terrain = t
	g.advancer = NewAdvancer(t, g.cfg.Display.TPS)
	return nil
}

// Update handles input. Space toggles the advancer, N steps once while
// paused, R reseeds with the configured seed, S with the clock, a left click
// toggles a cell while paused, Q or Escape quits.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.advancer.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.advancer.Running() {
			g.advancer.Stop()
		} else {
			g.advancer.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.advancer.Running() {
		g.terrain.Iterate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if !g.advancer.Running() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.toggleCellAtCursor()
	}

	g.overlay.Update()
	return nil
}

// toggleCellAtCursor flips the activation of the clicked cell. Editing is
// only reachable while the advancer is stopped, which is what the engine's
// Set contract requires.
func (g *Game) toggleCellAtCursor() {
	x, y := ebiten.CursorPosition()
	row := y / g.cfg.Display.Scale
	col := x / g.cfg.Display.Scale
	age, err := g.terrain.Age(row, col)
	if err != nil {
		return
	}
	next := int8(1)
	if age > 0 {
		next = 0
	}
	if err := g.terrain.Set(row, col, next); err != nil {
		return
	}
}

// Draw renders the latest consistent snapshot and the stats overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	stats, err := g.terrain.Snapshot(g.cells)
	if err != nil {
		return
	}
	g.painter.Blit(screen, g.cells, g.palette, g.background, g.cfg.Display.Scale)
	g.overlay.Draw(screen, stats, g.advancer.Running())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.cfg.Grid.Size * g.cfg.Display.Scale
	return side, side
}
