//go:build ebiten

package app

import (
	"time"

	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"
	"falling-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 168

// Game adapts a sand grid to the ebiten.Game interface.
type Game struct {
	sim     *sand.Grid
	painter *render.GridPainter
	hud     *ui.HUD

	scale     int
	paused    bool
	tickOnce  bool
	seed      int64
	iteration int
}

// New constructs a Game for the provided grid.
func New(sim *sand.Grid, scale int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H, render.MaterialPalette()),
		hud:     ui.NewHUD(hudWidth),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.iteration = 0
}

// Update handles per-frame logic and advances the simulation.
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

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.iteration++
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state and the stats panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	s := g.sim.Size()
	g.hud.Draw(screen, s.W*g.scale, s.H*g.scale, ui.Collect(g.sim, g.iteration, g.paused))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

// WindowSize returns the window size that fits the grid and the panel.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}
