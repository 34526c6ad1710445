//go:build ebiten

package app

import (
	"time"

	"spinlab/internal/core"
	"spinlab/internal/render"
	"spinlab/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	if scale < 1 {
		scale = 1
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, hudWidth),
		overlay: ui.NewOverlay(sim),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.overlay.Reset()
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.tickOnce = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Reset(g.seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Reset(time.Now().UnixNano())
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		ui.Adjust(g.sim, "beta", 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		ui.Adjust(g.sim, "beta", -1)
	}

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		g.overlay.Update()
	}
	g.hud.Update(g.viewWidth())
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), render.SpinUp, render.SpinDown, g.scale)
	s := g.sim.Size()
	g.overlay.Draw(screen, g.viewWidth(), s.H*g.scale)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size: the scaled grid plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.viewWidth() + g.hud.Width(), s.H * g.scale
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }
