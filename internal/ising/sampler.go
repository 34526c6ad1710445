package ising

import (
	"fmt"
	"math"

	"spinlab/internal/core"
)

// Source supplies the random draws the sampler consumes. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns the deterministic PCG source used for seeded runs.
func NewSource(seed int64) Source {
	return core.NewRNG(seed).Source()
}

// DefaultCoupling is the coupling constant J used by MetropolisHastings.
const DefaultCoupling = 1.0

// Config holds the parameters of a single sampling run.
type Config struct {
	Size     int
	Steps    int
	Beta     float64
	Coupling float64
	Seed     int64
}

// DefaultConfig is a 40×40 lattice at β=0.5 with 500000 steps.
func DefaultConfig() Config {
	return Config{Size: 40, Steps: 500_000, Beta: 0.5, Coupling: DefaultCoupling, Seed: 42}
}

// Validate checks the configuration and returns a wrapped sentinel error.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size %d: %w", c.Size, ErrInvalidSize)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps %d: %w", c.Steps, ErrInvalidSteps)
	}
	if err := validateBeta(c.Beta); err != nil {
		return err
	}
	if math.IsNaN(c.Coupling) || math.IsInf(c.Coupling, 0) {
		return fmt.Errorf("coupling %v: %w", c.Coupling, ErrInvalidCoupling)
	}
	return nil
}

func validateBeta(beta float64) error {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return fmt.Errorf("beta %v: %w", beta, ErrInvalidTemperature)
	}
	return nil
}

// Proposal records a single Metropolis–Hastings step. Draw is only meaningful
// when Drawn is set; proposals with DeltaE < 0 are accepted without a draw.
type Proposal struct {
	Step     int
	X, Y     int
	DeltaE   float64
	Draw     float64
	Drawn    bool
	Accepted bool
}

// Sampler performs single-spin Metropolis–Hastings updates on a lattice it
// owns. It is not safe for concurrent use.
type Sampler struct {
	lattice  *Lattice
	beta     float64
	coupling float64
	src      Source
	energy   float64
	step     int
}

// NewSampler wraps an existing lattice. The running energy starts at the
// lattice's TotalEnergy.
func NewSampler(lattice *Lattice, beta, coupling float64, src Source) (*Sampler, error) {
	if lattice == nil {
		return nil, ErrInvalidSize
	}
	if err := validateBeta(beta); err != nil {
		return nil, err
	}
	if math.IsNaN(coupling) || math.IsInf(coupling, 0) {
		return nil, fmt.Errorf("coupling %v: %w", coupling, ErrInvalidCoupling)
	}
	return &Sampler{
		lattice:  lattice,
		beta:     beta,
		coupling: coupling,
		src:      src,
		energy:   TotalEnergy(lattice, coupling),
	}, nil
}

// Lattice returns the sampler's lattice. Callers must not mutate it while
// stepping.
func (s *Sampler) Lattice() *Lattice { return s.lattice }

// Energy returns the running energy: the initial TotalEnergy plus every
// accepted DeltaE.
func (s *Sampler) Energy() float64 { return s.energy }

// Beta returns the current inverse temperature.
func (s *Sampler) Beta() float64 { return s.beta }

// Coupling returns the coupling constant.
func (s *Sampler) Coupling() float64 { return s.coupling }

// Steps returns how many proposals have been made.
func (s *Sampler) Steps() int { return s.step }

// SetBeta changes the inverse temperature for subsequent steps.
func (s *Sampler) SetBeta(beta float64) error {
	if err := validateBeta(beta); err != nil {
		return err
	}
	s.beta = beta
	return nil
}

// Step proposes flipping one uniformly chosen spin. The row index is drawn
// before the column index. A uniform draw is consumed only when DeltaE >= 0,
// and the flip is accepted iff exp(-β·ΔE) > draw, so ΔE == 0 always flips.
func (s *Sampler) Step() Proposal {
	n := s.lattice.Size()
	x := s.src.IntN(n)
	y := s.src.IntN(n)
	s.step++

	p := Proposal{Step: s.step, X: x, Y: y, DeltaE: DeltaE(s.lattice, x, y, s.coupling)}
	if p.DeltaE < 0 {
		p.Accepted = true
	} else {
		p.Draw = s.src.Float64()
		p.Drawn = true
		p.Accepted = math.Exp(-s.beta*p.DeltaE) > p.Draw
	}
	if p.Accepted {
		s.lattice.Flip(x, y)
		s.energy += p.DeltaE
	}
	return p
}

// Sweep performs N² proposals, one lattice sweep on average.
func (s *Sampler) Sweep() (accepted int) {
	n := s.lattice.Size()
	for k := 0; k < n*n; k++ {
		if s.Step().Accepted {
			accepted++
		}
	}
	return accepted
}

// Result is the outcome of a sampling run.
type Result struct {
	// Initial is a copy of the lattice before the first proposal.
	Initial *Lattice
	// Lattice is the final state.
	Lattice *Lattice
	// Energies holds one entry per step; Energies[0] is the initial TotalEnergy.
	Energies []float64
	// Proposals counts the steps after the first (len(Energies)-1).
	Proposals int
	// Accepted counts accepted proposals.
	Accepted int
	Beta     float64
	Coupling float64
}

// AcceptanceRate is the fraction of proposals that flipped a spin.
func (r *Result) AcceptanceRate() float64 {
	if r.Proposals == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Proposals)
}

// Magnetization of the final lattice.
func (r *Result) Magnetization() float64 { return Magnetization(r.Lattice) }

// MetropolisHastings draws a random N×N lattice from src, fixes J at 1 and
// runs nSteps-1 proposals, returning the final lattice and the full energy
// series of length nSteps.
func MetropolisHastings(n, nSteps int, beta float64, src Source) (*Result, error) {
	cfg := Config{Size: n, Steps: nSteps, Beta: beta, Coupling: DefaultCoupling}
	return run(cfg, src, nil)
}

// Run executes a configured run with a PCG source seeded from cfg.Seed.
// observe, when non-nil, is called after every proposal.
func Run(cfg Config, observe func(Proposal)) (*Result, error) {
	return run(cfg, NewSource(cfg.Seed), observe)
}

// RunWithSource is Run with an explicit random source.
func RunWithSource(cfg Config, src Source, observe func(Proposal)) (*Result, error) {
	return run(cfg, src, observe)
}

func run(cfg Config, src Source, observe func(Proposal)) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lattice, err := RandomLattice(cfg.Size, src)
	if err != nil {
		return nil, err
	}
	initial := lattice.Clone()
	sampler, err := NewSampler(lattice, cfg.Beta, cfg.Coupling, src)
	if err != nil {
		return nil, err
	}

	energies := make([]float64, cfg.Steps)
	energies[0] = sampler.Energy()
	accepted := 0
	for s := 1; s < cfg.Steps; s++ {
		p := sampler.Step()
		if p.Accepted {
			accepted++
			energies[s] = energies[s-1] + p.DeltaE
		} else {
			energies[s] = energies[s-1]
		}
		if observe != nil {
			observe(p)
		}
	}

	return &Result{
		Initial:   initial,
		Lattice:   lattice,
		Energies:  energies,
		Proposals: cfg.Steps - 1,
		Accepted:  accepted,
		Beta:      cfg.Beta,
		Coupling:  cfg.Coupling,
	}, nil
}
