// Package store persists sampler runs and β sweeps in SQLite.
package store

import (
	"errors"
	"time"

	"spinlab/internal/ising"
)

// ErrNotFound is returned when a run or sweep id is unknown.
var ErrNotFound = errors.New("store: not found")

// DB represents the database interface.
type DB interface {
	Close() error
	Migrate() error
	SaveRun(run *Run, energy []EnergyPoint) error
	GetRun(id string) (*Run, error)
	GetRunEnergy(id string) ([]EnergyPoint, error)
	ListRuns(query RunsQuery) (*RunsList, error)
	SaveSweep(sweep *Sweep) error
	GetSweep(id string) (*Sweep, error)
}

// RunsQuery represents query parameters for listing runs.
type RunsQuery struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// RunsList represents a paginated runs response.
type RunsList struct {
	Runs       []Run `json:"runs"`
	TotalCount int   `json:"totalCount"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

// Run is a persisted sampler run summary.
type Run struct {
	ID             string    `json:"id"`
	Size           int       `json:"size"`
	Steps          int       `json:"steps"`
	Beta           float64   `json:"beta"`
	Coupling       float64   `json:"coupling"`
	Seed           int64     `json:"seed"`
	Stride         int       `json:"stride"`
	InitialEnergy  float64   `json:"initialEnergy"`
	FinalEnergy    float64   `json:"finalEnergy"`
	Accepted       int       `json:"accepted"`
	AcceptanceRate float64   `json:"acceptanceRate"`
	Magnetization  float64   `json:"magnetization"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EnergyPoint is one retained entry of a thinned energy series.
type EnergyPoint struct {
	Step   int     `json:"step"`
	Energy float64 `json:"energy"`
}

// Sweep is a persisted β sweep.
type Sweep struct {
	ID        string             `json:"id"`
	Size      int                `json:"size"`
	Steps     int                `json:"steps"`
	BurnIn    int                `json:"burnIn"`
	Seed      int64              `json:"seed"`
	Points    []ising.SweepPoint `json:"points"`
	CreatedAt time.Time          `json:"createdAt"`
}

// NewRun summarises a finished run and thins its energy series.
func NewRun(cfg ising.Config, res *ising.Result, stride int) (*Run, []EnergyPoint) {
	if stride < 1 {
		stride = 1
	}
	run := &Run{
		Size:           cfg.Size,
		Steps:          cfg.Steps,
		Beta:           cfg.Beta,
		Coupling:       cfg.Coupling,
		Seed:           cfg.Seed,
		Stride:         stride,
		InitialEnergy:  res.Energies[0],
		FinalEnergy:    res.Energies[len(res.Energies)-1],
		Accepted:       res.Accepted,
		AcceptanceRate: res.AcceptanceRate(),
		Magnetization:  res.Magnetization(),
	}
	steps, values := ising.Thin(res.Energies, stride)
	series := make([]EnergyPoint, len(steps))
	for i, s := range steps {
		series[i] = EnergyPoint{Step: s, Energy: values[i]}
	}
	return run, series
}

// EnergyValues returns the energies of a thinned series in step order.
func EnergyValues(series []EnergyPoint) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Energy
	}
	return out
}
