package life

import (
	"strconv"

	"spinlab/internal/core"
)

// Config holds the board dimensions.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 100, Height: 100}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	return c
}

// Life implements Conway's Game of Life (B3/S23) on a torus.
type Life struct {
	cur *core.Grid[uint8]
	nxt *core.Grid[uint8]
}

// New returns a Life simulation with the provided dimensions.
func New(w, h int) *Life {
	return &Life{cur: core.NewGrid[uint8](w, h), nxt: core.NewGrid[uint8](w, h)}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.cur.W, H: l.cur.H} }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur.Cells() }

// Reset fills the board with independent 0/1 cells using the provided seed.
func (l *Life) Reset(seed int64) {
	core.FillBinary(core.NewRNG(seed).Source(), l.cur.Cells())
}

// Population returns the fraction of live cells.
func (l *Life) Population() float64 {
	alive := 0
	cells := l.cur.Cells()
	for _, c := range cells {
		alive += int(c)
	}
	return float64(alive) / float64(len(cells))
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	w, h := l.cur.W, l.cur.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					neighbors += int(l.cur.At(x+dx, y+dy))
				}
			}
			alive := l.cur.At(x, y) == 1
			var next uint8
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				next = 1
			}
			l.nxt.Set(x, y, next)
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}

// Parameters reports the board size and live-cell fraction.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				core.IntParam("w", "Width", l.cur.W),
				core.IntParam("h", "Height", l.cur.H),
				core.FloatParam("population", "Alive", l.Population()),
			},
		},
	}}
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return New(c.Width, c.Height)
	})
}
