package ising

import "errors"

var (
	// ErrInvalidSize indicates a lattice edge length below 1.
	ErrInvalidSize = errors.New("ising: lattice size must be at least 1")
	// ErrInvalidSteps indicates a step count below 1.
	ErrInvalidSteps = errors.New("ising: step count must be at least 1")
	// ErrInvalidTemperature indicates a negative or non-finite inverse temperature.
	ErrInvalidTemperature = errors.New("ising: inverse temperature must be finite and non-negative")
	// ErrInvalidCoupling indicates a non-finite coupling constant.
	ErrInvalidCoupling = errors.New("ising: coupling constant must be finite")
	// ErrInvalidSweep indicates an unusable sweep configuration.
	ErrInvalidSweep = errors.New("ising: invalid sweep configuration")
	// ErrInvalidLattice indicates rows that are not square or hold values other than ±1.
	ErrInvalidLattice = errors.New("ising: lattice must be square with spins of -1 or +1")
)
