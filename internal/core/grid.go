package core

// Cell constrains the value types a Grid can hold.
type Cell interface {
	~int8 | ~uint8
}

// Grid stores a 2D grid of small cell values in row-major order with toroidal
// addressing. Row y, column x lives at index y*W + x.
type Grid[T Cell] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions. Non-positive dimensions
// are clamped to 1.
func NewGrid[T Cell](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid[T]) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// At returns the value at (x, y) after wrapping.
func (g *Grid[T]) At(x, y int) T {
	x, y = g.Wrap(x, y)
	return g.data[y*g.W+x]
}

// Set stores v at (x, y) after wrapping.
func (g *Grid[T]) Set(x, y int, v T) {
	x, y = g.Wrap(x, y)
	g.data[y*g.W+x] = v
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(out.data, g.data)
	return out
}
