//go:build !ebiten

package ui

import "spinlab/internal/core"

// Overlay is a no-op placeholder for headless builds.
type Overlay struct{}

// NewOverlay returns nil in the headless build.
func NewOverlay(core.Sim) *Overlay { return nil }

// Reset is a no-op in the headless build.
func (o *Overlay) Reset() {}

// Update is a no-op in the headless build.
func (o *Overlay) Update() {}

// Draw is a no-op in the headless build.
func (o *Overlay) Draw(any, int, int) {}
