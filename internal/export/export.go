// Package export writes sampler output as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"spinlab/internal/ising"
)

// EnergyHeader and SweepHeader are the first rows of the respective CSVs.
var (
	EnergyHeader = []string{"step", "energy"}
	SweepHeader  = []string{
		"beta", "magnetization", "abs_magnetization", "mean_energy",
		"energy_variance", "specific_heat", "acceptance_rate",
	}
)

// WriteEnergySeries writes every stride-th (step, energy) pair plus the final one.
func WriteEnergySeries(w io.Writer, energies []float64, stride int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EnergyHeader); err != nil {
		return fmt.Errorf("export: energy header: %w", err)
	}
	steps, values := ising.Thin(energies, stride)
	for i, s := range steps {
		if err := cw.Write([]string{strconv.Itoa(s), formatFloat(values[i])}); err != nil {
			return fmt.Errorf("export: energy row %d: %w", s, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweep writes one row per sweep point.
func WriteSweep(w io.Writer, points []ising.SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SweepHeader); err != nil {
		return fmt.Errorf("export: sweep header: %w", err)
	}
	for _, p := range points {
		row := []string{
			formatFloat(p.Beta),
			formatFloat(p.Magnetization),
			formatFloat(p.AbsMagnetization),
			formatFloat(p.MeanEnergy),
			formatFloat(p.EnergyVariance),
			formatFloat(p.SpecificHeat),
			formatFloat(p.AcceptanceRate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: sweep row beta=%v: %w", p.Beta, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLattice writes the lattice as N rows of ±1.
func WriteLattice(w io.Writer, l *ising.Lattice) error {
	cw := csv.NewWriter(w)
	for i, row := range l.Rows() {
		rec := make([]string, len(row))
		for j, s := range row {
			rec[j] = strconv.Itoa(int(s))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export: lattice row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToFile creates path and hands it to write, closing it afterwards.
func ToFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()
	return write(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
