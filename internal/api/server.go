// Package api serves sampler runs and β sweeps over HTTP.
package api

import (
	"net/http"
	"runtime"
	"time"

	"spinlab/internal/logger"
	"spinlab/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Limits bounds the work a single request may ask for.
type Limits struct {
	MaxSize    int
	MaxSteps   int
	MaxPoints  int
	MaxWorkers int
	Timeout    time.Duration
}

// DefaultLimits returns the limits used by isingd unless overridden.
func DefaultLimits() Limits {
	return Limits{
		MaxSize:    256,
		MaxSteps:   5_000_000,
		MaxPoints:  200,
		MaxWorkers: runtime.NumCPU(),
		Timeout:    5 * time.Minute,
	}
}

// Server handles HTTP requests.
type Server struct {
	db        store.DB
	log       *logger.Logger
	limits    Limits
	startTime time.Time
}

// NewServer creates a new API server.
func NewServer(db store.DB, log *logger.Logger, limits Limits) *Server {
	if log == nil {
		log = logger.Discard()
	}
	if limits.MaxWorkers < 1 {
		limits.MaxWorkers = 1
	}
	return &Server{db: db, log: log, limits: limits, startTime: time.Now()}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.limits.Timeout > 0 {
		r.Use(middleware.Timeout(s.limits.Timeout))
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", s.handleCreateRun)
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
			r.Get("/{id}/energy.png", s.handleRunEnergyChart)
		})
		r.Route("/sweeps", func(r chi.Router) {
			r.Post("/", s.handleCreateSweep)
			r.Get("/{id}", s.handleGetSweep)
			r.Get("/{id}/magnetization.png", s.handleSweepChart)
		})
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Infof("request_id=%s %s %s status=%d bytes=%d duration=%s",
			middleware.GetReqID(r.Context()), r.Method, r.URL.Path,
			ww.Status(), ww.BytesWritten(), time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}
