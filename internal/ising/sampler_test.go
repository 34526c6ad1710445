package ising

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of draws and fails the test when a
// draw is out of range or the script runs dry.
type scriptedSource struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("scripted source: ran out of integer draws")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted source: draw %d out of range [0,%d)", v, n)
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatalf("scripted source: ran out of uniform draws")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestMetropolisHastingsScriptedScenario(t *testing.T) {
	src := &scriptedSource{
		t: t,
		ints: []int{
			// initial lattice, row-major, 0 → -1 and 1 → +1
			1, 1, 0, 1,
			0, 1, 1, 1,
			1, 0, 0, 1,
			1, 1, 1, 0,
			// proposals (row, column)
			0, 2, // ΔE = -8, accepted without a draw
			1, 1, // ΔE = 0, always accepted
			0, 0, // ΔE = 4, exp(-4) ≈ 0.0183 > 0.01, accepted
			1, 3, // ΔE = 4, exp(-4) < 0.5, rejected
		},
		floats: []float64{0.999, 0.01, 0.5},
	}

	res, err := MetropolisHastings(4, 5, 1.0, src)
	require.NoError(t, err)

	require.Equal(t, scenarioRows, res.Initial.Rows())
	require.Equal(t, []float64{-24, -32, -32, -28, -28}, res.Energies)
	require.Equal(t, [][]int8{
		{-1, 1, 1, 1},
		{-1, -1, 1, 1},
		{1, -1, -1, 1},
		{1, 1, 1, -1},
	}, res.Lattice.Rows())
	require.Equal(t, 4, res.Proposals)
	require.Equal(t, 3, res.Accepted)
	require.Empty(t, src.ints, "all integer draws consumed")
	require.Empty(t, src.floats, "all uniform draws consumed")
}

func TestNegativeDeltaSkipsUniformDraw(t *testing.T) {
	l := mustLattice(t, scenarioRows)
	src := &scriptedSource{t: t, ints: []int{0, 2}}
	s, err := NewSampler(l, 1, 1, src)
	require.NoError(t, err)

	p := s.Step()
	require.True(t, p.Accepted)
	require.False(t, p.Drawn)
	require.Equal(t, -8.0, p.DeltaE)
	require.Equal(t, -32.0, s.Energy())
	require.Equal(t, 1, s.Steps())
}

func TestZeroDeltaAlwaysAccepted(t *testing.T) {
	for _, u := range []float64{0, 0.5, math.Nextafter(1, 0)} {
		l := mustLattice(t, scenarioRows)
		src := &scriptedSource{t: t, ints: []int{1, 1}, floats: []float64{u}}
		s, err := NewSampler(l, 3, 1, src)
		require.NoError(t, err)
		p := s.Step()
		require.Equal(t, 0.0, p.DeltaE)
		require.True(t, p.Accepted, "draw %v", u)
		require.Equal(t, int8(-1), l.At(1, 1))
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"ZeroSize", Config{Size: 0, Steps: 10, Beta: 1, Coupling: 1}, ErrInvalidSize},
		{"ZeroSteps", Config{Size: 2, Steps: 0, Beta: 1, Coupling: 1}, ErrInvalidSteps},
		{"NegativeBeta", Config{Size: 2, Steps: 10, Beta: -0.1, Coupling: 1}, ErrInvalidTemperature},
		{"NaNBeta", Config{Size: 2, Steps: 10, Beta: math.NaN(), Coupling: 1}, ErrInvalidTemperature},
		{"InfBeta", Config{Size: 2, Steps: 10, Beta: math.Inf(1), Coupling: 1}, ErrInvalidTemperature},
		{"InfCoupling", Config{Size: 2, Steps: 10, Beta: 1, Coupling: math.Inf(-1)}, ErrInvalidCoupling},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(tc.cfg, nil)
			require.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}

	_, err := MetropolisHastings(0, 1, 0, NewSource(1))
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = MetropolisHastings(1, 0, 0, NewSource(1))
	require.ErrorIs(t, err, ErrInvalidSteps)
	_, err = MetropolisHastings(1, 1, -1, NewSource(1))
	require.ErrorIs(t, err, ErrInvalidTemperature)
}

func TestSingleStepRunHasOnlyInitialEnergy(t *testing.T) {
	res, err := Run(Config{Size: 3, Steps: 1, Beta: 0.4, Coupling: 1, Seed: 5}, nil)
	require.NoError(t, err)
	require.Len(t, res.Energies, 1)
	require.Equal(t, TotalEnergy(res.Lattice, 1), res.Energies[0])
	require.True(t, res.Lattice.Equal(res.Initial))
	require.Equal(t, 0.0, res.AcceptanceRate())
}

func TestOneByOneLatticeRuns(t *testing.T) {
	res, err := Run(Config{Size: 1, Steps: 200, Beta: 0.3, Coupling: 1, Seed: 9}, nil)
	require.NoError(t, err)
	require.True(t, res.Lattice.Valid())
	require.Len(t, res.Energies, 200)
}

func TestSpinsStayBinary(t *testing.T) {
	for _, beta := range []float64{0, 0.2, 0.44, 1, 5} {
		res, err := Run(Config{Size: 8, Steps: 5000, Beta: beta, Coupling: 1, Seed: 3}, nil)
		require.NoError(t, err)
		require.True(t, res.Initial.Valid(), "beta %v initial", beta)
		require.True(t, res.Lattice.Valid(), "beta %v final", beta)
	}
}

func TestEnergySeriesFollowsProposals(t *testing.T) {
	cfg := Config{Size: 6, Steps: 4000, Beta: 0.6, Coupling: 1, Seed: 11}
	var log []Proposal
	res, err := Run(cfg, func(p Proposal) { log = append(log, p) })
	require.NoError(t, err)
	require.Len(t, log, cfg.Steps-1)

	sumAccepted := 0.0
	for k, p := range log {
		s := k + 1
		require.Equal(t, s, p.Step)
		diff := res.Energies[s] - res.Energies[s-1]
		if p.Accepted {
			require.Equal(t, p.DeltaE, diff, "step %d", s)
			sumAccepted += p.DeltaE
		} else {
			require.Equal(t, 0.0, diff, "step %d", s)
			require.True(t, p.Drawn, "rejection needs a draw")
			require.GreaterOrEqual(t, p.DeltaE, 0.0)
		}
	}

	// ΔE is single-counted, so its running sum tracks BondEnergy on N ≥ 2.
	require.InDelta(t, BondEnergy(res.Lattice, 1)-BondEnergy(res.Initial, 1), sumAccepted, 1e-9)
	require.Equal(t, TotalEnergy(res.Initial, 1), res.Energies[0])
}

func TestRunDeterministic(t *testing.T) {
	cfg := Config{Size: 10, Steps: 20000, Beta: 0.44, Coupling: 1, Seed: 1234}
	a, err := Run(cfg, nil)
	require.NoError(t, err)
	b, err := Run(cfg, nil)
	require.NoError(t, err)
	require.True(t, a.Lattice.Equal(b.Lattice))
	require.True(t, slices.Equal(a.Energies, b.Energies))

	cfg.Seed++
	c, err := Run(cfg, nil)
	require.NoError(t, err)
	require.False(t, a.Initial.Equal(c.Initial), "different seeds should differ")
}

func TestZeroBetaAcceptsEverything(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		res, err := Run(Config{Size: 2, Steps: 1000, Beta: 0, Coupling: 1, Seed: seed}, nil)
		require.NoError(t, err)
		require.Equal(t, res.Proposals, res.Accepted, "seed %d", seed)
		require.Equal(t, 1.0, res.AcceptanceRate())
		// 999 flips is odd, so at least one cell ends opposite to where it began.
		require.False(t, res.Lattice.Equal(res.Initial), "seed %d", seed)
	}
}

func TestSamplerSetBeta(t *testing.T) {
	l, err := NewLattice(3)
	require.NoError(t, err)
	s, err := NewSampler(l, 0.1, 1, NewSource(1))
	require.NoError(t, err)
	require.ErrorIs(t, s.SetBeta(-1), ErrInvalidTemperature)
	require.Equal(t, 0.1, s.Beta())
	require.NoError(t, s.SetBeta(2))
	require.Equal(t, 2.0, s.Beta())

	// A fully aligned lattice at large β only flips via rare uphill moves.
	accepted := s.Sweep()
	require.Equal(t, 9, s.Steps())
	require.LessOrEqual(t, accepted, 9)
	require.True(t, l.Valid())
}

func TestNewSamplerRejectsNilLattice(t *testing.T) {
	_, err := NewSampler(nil, 1, 1, NewSource(1))
	require.ErrorIs(t, err, ErrInvalidSize)
}
