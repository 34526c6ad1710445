//go:build ebiten

package ui

import (
	"image/color"

	"spinlab/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	traceSamples = 512
	traceHeight  = 64
)

// Overlay draws a scrolling trace of one observable over the bottom edge of
// the simulation view. T toggles it.
type Overlay struct {
	sim   core.Sim
	trace *Trace
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay tracing the default observable of sim.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, trace: NewTrace(traceKey(sim), traceSamples), show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Reset clears the recorded trace.
func (o *Overlay) Reset() {
	if o != nil {
		o.trace.Reset()
	}
}

// Update handles the toggle key and records a sample.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.show = !o.show
	}
	if provider, ok := o.sim.(core.ParameterProvider); ok {
		o.trace.Sample(provider.Parameters())
	}
}

// Draw paints the trace into the lower band of a w×h view.
func (o *Overlay) Draw(screen *ebiten.Image, w, h int) {
	if o == nil || !o.show || w <= 0 || h <= traceHeight {
		return
	}
	top := float64(h - traceHeight)
	o.fillRect(screen, 0, top, float64(w), traceHeight, color.RGBA{A: 160})

	values := o.trace.Values()
	lo, hi := o.trace.Bounds()
	span := hi - lo
	dx := float64(w) / float64(traceSamples)
	for i, v := range values {
		y := top + traceHeight - 2 - (v-lo)/span*(traceHeight-4)
		o.fillRect(screen, float64(i)*dx, y, max(dx, 1), 2, color.RGBA{R: 240, G: 180, B: 60, A: 255})
	}
	text.Draw(screen, o.trace.Key(), basicfont.Face7x13, 6, int(top)+14, color.RGBA{R: 220, G: 220, B: 230, A: 255})
}

func (o *Overlay) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
