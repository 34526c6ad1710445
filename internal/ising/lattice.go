package ising

import (
	"spinlab/internal/core"
)

// Lattice is an N×N torus of ±1 spins. Cell (i, j) is row i, column j.
type Lattice struct {
	grid *core.Grid[int8]
}

// NewLattice returns an N×N lattice with every spin set to +1.
func NewLattice(n int) (*Lattice, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	g := core.NewGrid[int8](n, n)
	g.Fill(1)
	return &Lattice{grid: g}, nil
}

// RandomLattice draws every spin independently and uniformly from {-1, +1}
// in row-major order, consuming one IntN(2) per cell.
func RandomLattice(n int, src Source) (*Lattice, error) {
	l, err := NewLattice(n)
	if err != nil {
		return nil, err
	}
	cells := l.grid.Cells()
	for i := range cells {
		if src.IntN(2) == 0 {
			cells[i] = -1
		} else {
			cells[i] = 1
		}
	}
	return l, nil
}

// LatticeFromRows builds a lattice from explicit rows.
func LatticeFromRows(rows [][]int8) (*Lattice, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrInvalidSize
	}
	l, err := NewLattice(n)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, ErrInvalidLattice
		}
		for j, s := range row {
			if s != 1 && s != -1 {
				return nil, ErrInvalidLattice
			}
			l.grid.Set(j, i, s)
		}
	}
	return l, nil
}

// Size returns the edge length N.
func (l *Lattice) Size() int { return l.grid.W }

// At returns the spin at row i, column j with periodic wrapping.
func (l *Lattice) At(i, j int) int8 { return l.grid.At(j, i) }

// Flip inverts the spin at row i, column j.
func (l *Lattice) Flip(i, j int) {
	l.grid.Set(j, i, -l.grid.At(j, i))
}

// Spins exposes the row-major backing slice.
func (l *Lattice) Spins() []int8 { return l.grid.Cells() }

// Rows copies the lattice into a slice of rows.
func (l *Lattice) Rows() [][]int8 {
	n := l.Size()
	cells := l.grid.Cells()
	rows := make([][]int8, n)
	for i := range rows {
		rows[i] = append([]int8(nil), cells[i*n:(i+1)*n]...)
	}
	return rows
}

// Clone returns an independent copy.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{grid: l.grid.Clone()}
}

// Sum returns the total spin ΣS.
func (l *Lattice) Sum() int {
	total := 0
	for _, s := range l.grid.Cells() {
		total += int(s)
	}
	return total
}

// Valid reports whether every cell holds exactly -1 or +1.
func (l *Lattice) Valid() bool {
	for _, s := range l.grid.Cells() {
		if s != 1 && s != -1 {
			return false
		}
	}
	return true
}

// Equal reports whether two lattices hold the same spins.
func (l *Lattice) Equal(o *Lattice) bool {
	if l.Size() != o.Size() {
		return false
	}
	a, b := l.grid.Cells(), o.grid.Cells()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
