package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"spinlab/internal/ising"
	"spinlab/internal/render"
	"spinlab/internal/store"

	"github.com/go-chi/chi/v5"
)

const targetSeriesPoints = 1000

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, errBadRequest)
	}
	return nil
}

func (s *Server) runConfig(req RunRequest) (ising.Config, int, error) {
	cfg := ising.Config{
		Size:     req.Size,
		Steps:    req.Steps,
		Beta:     req.Beta,
		Coupling: ising.DefaultCoupling,
		Seed:     req.Seed,
	}
	if req.Coupling != nil {
		cfg.Coupling = *req.Coupling
	}
	if err := cfg.Validate(); err != nil {
		return cfg, 0, err
	}
	if cfg.Size > s.limits.MaxSize {
		return cfg, 0, fmt.Errorf("size %d exceeds limit %d: %w", cfg.Size, s.limits.MaxSize, ising.ErrInvalidSize)
	}
	if cfg.Steps > s.limits.MaxSteps {
		return cfg, 0, fmt.Errorf("steps %d exceeds limit %d: %w", cfg.Steps, s.limits.MaxSteps, ising.ErrInvalidSteps)
	}
	stride := req.Stride
	if stride < 0 {
		return cfg, 0, fmt.Errorf("stride %d: %w", stride, errBadRequest)
	}
	if stride == 0 {
		stride = max(1, cfg.Steps/targetSeriesPoints)
	}
	return cfg, stride, nil
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, stride, err := s.runConfig(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := ising.Run(cfg, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	run, series := store.NewRun(cfg, res, stride)
	if err := s.db.SaveRun(run, series); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Event("run", run.ID, fmt.Sprintf("n=%d steps=%d beta=%g accepted=%d", run.Size, run.Steps, run.Beta, run.Accepted))
	s.writeJSON(w, http.StatusCreated, RunResponse{Run: run, Energy: series})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	query := store.RunsQuery{}
	for key, dst := range map[string]*int{"page": &query.Page, "perPage": &query.PerPage} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.writeError(w, r, fmt.Errorf("%s=%q: %w", key, raw, errBadRequest))
			return
		}
		*dst = v
	}

	list, err := s.db.ListRuns(query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.db.GetRun(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	series, err := s.db.GetRunEnergy(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RunResponse{Run: run, Energy: series})
}

func (s *Server) handleRunEnergyChart(w http.ResponseWriter, r *http.Request) {
	series, err := s.db.GetRunEnergy(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	steps := make([]int, len(series))
	for i, p := range series {
		steps[i] = p.Step
	}

	var buf bytes.Buffer
	if err := render.EnergyChartPoints(&buf, steps, store.EnergyValues(series)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (s *Server) sweepConfig(req SweepRequest) (ising.SweepConfig, error) {
	if req.Points > s.limits.MaxPoints {
		return ising.SweepConfig{}, fmt.Errorf("points %d exceeds limit %d: %w", req.Points, s.limits.MaxPoints, ising.ErrInvalidSweep)
	}
	betas, err := ising.BetaRange(req.BetaMin, req.BetaMax, req.Points)
	if err != nil {
		return ising.SweepConfig{}, err
	}
	workers := req.Workers
	if workers <= 0 || workers > s.limits.MaxWorkers {
		workers = s.limits.MaxWorkers
	}
	cfg := ising.SweepConfig{
		Size:    req.Size,
		Steps:   req.Steps,
		Betas:   betas,
		BurnIn:  req.BurnIn,
		Seed:    req.Seed,
		Workers: workers,
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Size > s.limits.MaxSize {
		return cfg, fmt.Errorf("size %d exceeds limit %d: %w", cfg.Size, s.limits.MaxSize, ising.ErrInvalidSize)
	}
	if cfg.Steps > s.limits.MaxSteps {
		return cfg, fmt.Errorf("steps %d exceeds limit %d: %w", cfg.Steps, s.limits.MaxSteps, ising.ErrInvalidSteps)
	}
	return cfg, nil
}

func (s *Server) handleCreateSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, err := s.sweepConfig(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	points, err := ising.Sweep(r.Context(), cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sweep := &store.Sweep{
		Size:   cfg.Size,
		Steps:  cfg.Steps,
		BurnIn: cfg.BurnIn,
		Seed:   cfg.Seed,
		Points: points,
	}
	if err := s.db.SaveSweep(sweep); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Event("sweep", sweep.ID, fmt.Sprintf("n=%d points=%d workers=%d", cfg.Size, len(points), cfg.Workers))
	s.writeJSON(w, http.StatusCreated, sweep)
}

func (s *Server) handleGetSweep(w http.ResponseWriter, r *http.Request) {
	sweep, err := s.db.GetSweep(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sweep)
}

func (s *Server) handleSweepChart(w http.ResponseWriter, r *http.Request) {
	sweep, err := s.db.GetSweep(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := render.MagnetizationChart(&buf, sweep.Points); err != nil {
		s.writeError(w, r, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
