package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"spinlab/internal/ising"
	"spinlab/internal/render"
	"spinlab/internal/store"

	"github.com/go-chi/chi/v5/middleware"
)

// errBadRequest marks request errors that are not sampler validation errors.
var errBadRequest = errors.New("api: bad request")

var validationErrors = []error{
	errBadRequest,
	ising.ErrInvalidSize,
	ising.ErrInvalidSteps,
	ising.ErrInvalidTemperature,
	ising.ErrInvalidCoupling,
	ising.ErrInvalidSweep,
	render.ErrEmptySeries,
}

// classify maps an error to its HTTP status and error type.
func classify(err error) (int, string) {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, ErrTypeNotFound
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, ErrTypeValidation
		}
	}
	return http.StatusInternalServerError, ErrTypeInternal
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, errType := classify(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		s.log.Errorf("request_id=%s %s %s: %v", reqID, r.Method, r.URL.Path, err)
	} else {
		s.log.Warnf("request_id=%s %s %s: %v", reqID, r.Method, r.URL.Path, err)
	}
	s.writeJSON(w, status, APIError{Type: errType, Message: err.Error(), RequestID: reqID})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}
