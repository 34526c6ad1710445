package ising

import (
	"spinlab/internal/core"
	"spinlab/internal/ising"
)

const (
	maxBeta   = 2.0
	maxSweeps = 64
)

// Sim drives an ising.Sampler one or more lattice sweeps per tick.
type Sim struct {
	cfg      Config
	sampler  *ising.Sampler
	display  []uint8
	accepted int
	proposed int
}

// New creates an Ising simulation and resets it with the configured seed.
func New(cfg Config) *Sim {
	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	if cfg.Sweeps <= 0 {
		cfg.Sweeps = 1
	}
	s := &Sim{cfg: cfg, display: make([]uint8, cfg.Size*cfg.Size)}
	s.Reset(cfg.Seed)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "ising" }

// Size returns the lattice dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Size, H: s.cfg.Size} }

// Cells exposes the display buffer: 1 for spin up, 0 for spin down.
func (s *Sim) Cells() []uint8 { return s.display }

// Sampler exposes the underlying sampler.
func (s *Sim) Sampler() *ising.Sampler { return s.sampler }

// Reset draws a fresh random lattice from the seed.
func (s *Sim) Reset(seed int64) {
	s.cfg.Seed = seed
	src := ising.NewSource(seed)
	lattice, err := ising.RandomLattice(s.cfg.Size, src)
	if err != nil {
		panic(err)
	}
	sampler, err := ising.NewSampler(lattice, s.cfg.Beta, s.cfg.Coupling, src)
	if err != nil {
		// Hand-built configs may carry an invalid β or J.
		def := DefaultConfig()
		s.cfg.Beta, s.cfg.Coupling = def.Beta, def.Coupling
		sampler, _ = ising.NewSampler(lattice, s.cfg.Beta, s.cfg.Coupling, src)
	}
	s.sampler = sampler
	s.accepted, s.proposed = 0, 0
	s.refresh()
}

// Step applies the configured number of sweeps.
func (s *Sim) Step() {
	n := s.cfg.Size
	for k := 0; k < s.cfg.Sweeps; k++ {
		s.accepted += s.sampler.Sweep()
		s.proposed += n * n
	}
	s.refresh()
}

func (s *Sim) refresh() {
	for i, spin := range s.sampler.Lattice().Spins() {
		if spin > 0 {
			s.display[i] = 1
		} else {
			s.display[i] = 0
		}
	}
}

// AcceptanceRate is the fraction of accepted proposals since the last reset.
func (s *Sim) AcceptanceRate() float64 {
	if s.proposed == 0 {
		return 0
	}
	return float64(s.accepted) / float64(s.proposed)
}

// Parameters reports the configuration and live observables.
func (s *Sim) Parameters() core.ParameterSnapshot {
	l := s.sampler.Lattice()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("n", "Size", s.cfg.Size),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				core.FloatParam("beta", "Beta", s.sampler.Beta()),
				core.FloatParam("j", "Coupling", s.sampler.Coupling()),
				core.IntParam("sweeps", "Sweeps/tick", s.cfg.Sweeps),
			},
		},
		{
			Name: "Observables",
			Params: []core.Parameter{
				core.IntParam("steps", "Proposals", s.sampler.Steps()),
				core.FloatParam("energy", "Energy", s.sampler.Energy()),
				core.FloatParam("bond_energy", "Bond energy", ising.BondEnergy(l, s.sampler.Coupling())),
				core.FloatParam("magnetization", "Magnetization", ising.Magnetization(l)),
				core.FloatParam("acceptance", "Acceptance", s.AcceptanceRate()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "beta", Label: "Beta", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: maxBeta, HasMin: true, HasMax: true},
		{Key: "sweeps", Label: "Sweeps/tick", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxSweeps, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates β. The chain continues from the current lattice.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if key != "beta" || value < 0 || value > maxBeta {
		return false
	}
	if err := s.sampler.SetBeta(value); err != nil {
		return false
	}
	s.cfg.Beta = value
	return true
}

// SetIntParameter updates the sweeps applied per tick.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if key != "sweeps" || value < 1 || value > maxSweeps {
		return false
	}
	s.cfg.Sweeps = value
	return true
}

func init() {
	core.Register("ising", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
