package ising

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	require.Nil(t, Linspace(0, 1, 0))
	require.Equal(t, []float64{0.3}, Linspace(0.3, 0.9, 1))
	got := Linspace(0.1, 0.6, 6)
	require.Len(t, got, 6)
	for i, want := range []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6} {
		require.InDelta(t, want, got[i], 1e-12)
	}
	require.Equal(t, 0.6, got[5])
}

func TestSummarize(t *testing.T) {
	series := []float64{100, -4, -2, -4, -2}
	stats := Summarize(series, 1)
	require.Equal(t, 4, stats.Count)
	require.InDelta(t, -3.0, stats.Mean, 1e-12)
	require.InDelta(t, 1.0, stats.Variance, 1e-12)
	require.Equal(t, -4.0, stats.Min)
	require.Equal(t, -2.0, stats.Max)

	require.Equal(t, SeriesStats{}, Summarize(series, 5))
	require.Equal(t, 5, Summarize(series, -3).Count)
	require.InDelta(t, 0.25*1.0/4, SpecificHeat(stats, 0.5, 2), 1e-12)
	require.Equal(t, 0.0, SpecificHeat(stats, 0.5, 0))
}

func TestThin(t *testing.T) {
	series := []float64{0, 1, 2, 3, 4, 5, 6}
	steps, values := Thin(series, 3)
	require.Equal(t, []int{0, 3, 6}, steps)
	require.Equal(t, []float64{0, 3, 6}, values)

	steps, values = Thin(series, 4)
	require.Equal(t, []int{0, 4, 6}, steps)
	require.Equal(t, []float64{0, 4, 6}, values)

	steps, _ = Thin(series, 0)
	require.Len(t, steps, len(series))

	steps, values = Thin(nil, 3)
	require.Nil(t, steps)
	require.Nil(t, values)
}

func TestBetaRange(t *testing.T) {
	betas, err := BetaRange(0.1, 0.5, 5)
	require.NoError(t, err)
	require.Len(t, betas, 5)

	_, err = BetaRange(0.5, 0.1, 5)
	require.ErrorIs(t, err, ErrInvalidSweep)
	_, err = BetaRange(-1, 0.1, 5)
	require.ErrorIs(t, err, ErrInvalidTemperature)
	_, err = BetaRange(0, 1, 0)
	require.ErrorIs(t, err, ErrInvalidSweep)
}

func smallSweep(workers int) SweepConfig {
	return SweepConfig{
		Size:    6,
		Steps:   3000,
		Betas:   []float64{0.9, 0.1, 0.5, 0.3},
		BurnIn:  1000,
		Seed:    7,
		Workers: workers,
	}
}

func TestSweepDeterministicAcrossWorkers(t *testing.T) {
	serial, err := Sweep(context.Background(), smallSweep(1))
	require.NoError(t, err)
	parallel, err := Sweep(context.Background(), smallSweep(4))
	require.NoError(t, err)
	require.Equal(t, serial, parallel)

	require.Len(t, serial, 4)
	for i := 1; i < len(serial); i++ {
		require.Less(t, serial[i-1].Beta, serial[i].Beta)
	}
	for _, p := range serial {
		require.LessOrEqual(t, math.Abs(p.Magnetization), 1.0)
		require.Equal(t, math.Abs(p.Magnetization), p.AbsMagnetization)
		require.GreaterOrEqual(t, p.EnergyVariance, 0.0)
		require.GreaterOrEqual(t, p.AcceptanceRate, 0.0)
		require.LessOrEqual(t, p.AcceptanceRate, 1.0)
	}
}

func TestSweepPointMatchesStandaloneRun(t *testing.T) {
	cfg := smallSweep(2)
	points, err := Sweep(context.Background(), cfg)
	require.NoError(t, err)

	// β=0.9 sits at index 0 of the input, so its chain uses Seed+0.
	res, err := Run(Config{Size: cfg.Size, Steps: cfg.Steps, Beta: 0.9, Coupling: 1, Seed: cfg.Seed}, nil)
	require.NoError(t, err)
	last := points[len(points)-1]
	require.Equal(t, 0.9, last.Beta)
	require.Equal(t, res.Magnetization(), last.Magnetization)
	require.Equal(t, Summarize(res.Energies, cfg.BurnIn).Mean, last.MeanEnergy)
}

func TestSweepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, smallSweep(2))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSweepValidation(t *testing.T) {
	cfg := smallSweep(1)
	cfg.Betas = nil
	_, err := Sweep(context.Background(), cfg)
	require.ErrorIs(t, err, ErrInvalidSweep)

	cfg = smallSweep(1)
	cfg.BurnIn = cfg.Steps
	_, err = Sweep(context.Background(), cfg)
	require.ErrorIs(t, err, ErrInvalidSweep)

	cfg = smallSweep(1)
	cfg.Betas = []float64{0.2, -0.2}
	_, err = Sweep(context.Background(), cfg)
	require.ErrorIs(t, err, ErrInvalidTemperature)

	cfg = smallSweep(0)
	cfg.Size = 0
	_, err = Sweep(context.Background(), cfg)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestDefaultSweepConfigValid(t *testing.T) {
	cfg := DefaultSweepConfig()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Betas, 50)
	require.NoError(t, DefaultConfig().Validate())
	require.InDelta(t, 0.4407, CriticalBeta, 1e-4)
}
