package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"spinlab/internal/ising"

	"github.com/stretchr/testify/require"
)

func TestWriteEnergySeriesThins(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEnergySeries(&buf, []float64{-24, -32, -32, -28, -28}, 3))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"step", "energy"},
		{"0", "-24"},
		{"3", "-28"},
		{"4", "-28"},
	}, records)
}

func TestWriteSweep(t *testing.T) {
	var buf bytes.Buffer
	points := []ising.SweepPoint{
		{Beta: 0.25, Magnetization: -0.5, AbsMagnetization: 0.5, MeanEnergy: -10, EnergyVariance: 2, SpecificHeat: 0.125, AcceptanceRate: 0.75},
	}
	require.NoError(t, WriteSweep(&buf, points))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, SweepHeader, records[0])
	require.Equal(t, []string{"0.25", "-0.5", "0.5", "-10", "2", "0.125", "0.75"}, records[1])
}

func TestWriteLattice(t *testing.T) {
	l, err := ising.LatticeFromRows([][]int8{{1, -1}, {-1, -1}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLattice(&buf, l))
	require.Equal(t, "1,-1\n-1,-1\n", buf.String())
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.csv")
	require.NoError(t, ToFile(path, func(w io.Writer) error {
		return WriteEnergySeries(w, []float64{1, 2}, 1)
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "step,energy\n0,1\n1,2\n", string(data))

	require.Error(t, ToFile(filepath.Join(t.TempDir(), "missing", "x.csv"), func(io.Writer) error { return nil }))
}
