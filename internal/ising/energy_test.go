package ising

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioRows is the 4×4 starting lattice of the regression scenario.
var scenarioRows = [][]int8{
	{1, 1, -1, 1},
	{-1, 1, 1, 1},
	{1, -1, -1, 1},
	{1, 1, 1, -1},
}

func mustLattice(t *testing.T, rows [][]int8) *Lattice {
	t.Helper()
	l, err := LatticeFromRows(rows)
	require.NoError(t, err)
	return l
}

func TestPositionalEnergySingleCell(t *testing.T) {
	for _, s := range []int8{1, -1} {
		l := mustLattice(t, [][]int8{{s}})
		require.Equal(t, []float64{4 * float64(s)}, PositionalEnergy(l))
	}
}

func TestPositionalEnergyWrapsEdges(t *testing.T) {
	l := mustLattice(t, scenarioRows)
	want := []float64{
		2, 2, 4, 0,
		4, 0, 0, 2,
		0, 2, 2, 0,
		2, 2, -2, 4,
	}
	require.Equal(t, want, PositionalEnergy(l))
}

func TestTotalEnergyCountsEachSpinFourTimes(t *testing.T) {
	l := mustLattice(t, scenarioRows)
	require.Equal(t, 6, l.Sum())
	require.Equal(t, -24.0, TotalEnergy(l, 1))
	require.Equal(t, -4*2.5*float64(l.Sum()), TotalEnergy(l, 2.5))
}

func TestBondEnergyUniformLattice(t *testing.T) {
	l, err := NewLattice(5)
	require.NoError(t, err)
	// 2·N² bonds, each contributing -J.
	require.Equal(t, -50.0, BondEnergy(l, 1))
	require.Equal(t, 1.0, Magnetization(l))
}

func TestDeltaE(t *testing.T) {
	l := mustLattice(t, scenarioRows)
	cases := []struct {
		i, j int
		want float64
	}{
		{0, 2, -8},
		{1, 1, 0},
		{0, 0, 4},
		{3, 2, -4},
		{3, 3, -8},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DeltaE(l, tc.i, tc.j, 1), "cell (%d,%d)", tc.i, tc.j)
	}
	require.Equal(t, 8.0, DeltaE(l, 0, 0, 2))
}

func TestDeltaEMatchesBondEnergyChange(t *testing.T) {
	l := mustLattice(t, scenarioRows)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			before := BondEnergy(l, 1)
			dE := DeltaE(l, i, j, 1)
			l.Flip(i, j)
			require.Equal(t, dE, BondEnergy(l, 1)-before, "cell (%d,%d)", i, j)
			l.Flip(i, j)
		}
	}
}

func TestLatticeFromRowsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		rows [][]int8
		err  error
	}{
		{"Empty", nil, ErrInvalidSize},
		{"Ragged", [][]int8{{1, 1}, {1}}, ErrInvalidLattice},
		{"ZeroSpin", [][]int8{{1, 0}, {1, 1}}, ErrInvalidLattice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LatticeFromRows(tc.rows)
			require.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}
}

func TestLatticeRowsRoundTrip(t *testing.T) {
	l := mustLattice(t, scenarioRows)
	require.Equal(t, scenarioRows, l.Rows())
	c := l.Clone()
	c.Flip(0, 0)
	require.False(t, l.Equal(c))
	require.Equal(t, int8(1), l.At(0, 0))
	require.Equal(t, int8(-1), l.At(-4, 6), "wrapped access")
}
