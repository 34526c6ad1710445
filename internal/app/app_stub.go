//go:build !ebiten

package app

import (
	"errors"

	"spinlab/internal/core"
)

// ErrHeadless is returned by the headless Game.
var ErrHeadless = errors.New("app: GUI requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New returns a Game whose Update always fails with ErrHeadless.
func New(core.Sim, int, int, int64) *Game { return &Game{} }

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrHeadless }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
