package api

import (
	"spinlab/internal/store"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// Error types.
const (
	ErrTypeValidation = "validation_error"
	ErrTypeNotFound   = "not_found"
	ErrTypeInternal   = "internal_error"
)

// RunRequest starts a sampler run. Coupling defaults to 1 and Stride to a
// value that keeps about a thousand points of the energy series.
type RunRequest struct {
	Size     int      `json:"size"`
	Steps    int      `json:"steps"`
	Beta     float64  `json:"beta"`
	Coupling *float64 `json:"coupling,omitempty"`
	Seed     int64    `json:"seed"`
	Stride   int      `json:"stride,omitempty"`
}

// RunResponse is a run summary with its thinned energy series.
type RunResponse struct {
	Run    *store.Run          `json:"run"`
	Energy []store.EnergyPoint `json:"energy"`
}

// SweepRequest starts a β sweep. Workers defaults to the server limit.
type SweepRequest struct {
	Size    int     `json:"size"`
	Steps   int     `json:"steps"`
	BetaMin float64 `json:"betaMin"`
	BetaMax float64 `json:"betaMax"`
	Points  int     `json:"points"`
	BurnIn  int     `json:"burnIn"`
	Seed    int64   `json:"seed"`
	Workers int     `json:"workers,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
