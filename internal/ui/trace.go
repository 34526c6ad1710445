package ui

import (
	"strconv"

	"spinlab/internal/core"
)

// Trace is a fixed-capacity ring of recent observable samples.
type Trace struct {
	key    string
	buf    []float64
	head   int
	filled bool
}

// NewTrace records the parameter named key, keeping at most capacity samples.
func NewTrace(key string, capacity int) *Trace {
	if capacity < 1 {
		capacity = 1
	}
	return &Trace{key: key, buf: make([]float64, capacity)}
}

// Key returns the traced parameter key.
func (t *Trace) Key() string { return t.key }

// Push appends a sample, evicting the oldest when full.
func (t *Trace) Push(v float64) {
	t.buf[t.head] = v
	t.head = (t.head + 1) % len(t.buf)
	if t.head == 0 {
		t.filled = true
	}
}

// Sample reads the traced key from snap and pushes it. It reports whether the
// key was present and numeric.
func (t *Trace) Sample(snap core.ParameterSnapshot) bool {
	p, ok := snap.Lookup(t.key)
	if !ok {
		return false
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return false
	}
	t.Push(v)
	return true
}

// Len returns the number of stored samples.
func (t *Trace) Len() int {
	if t.filled {
		return len(t.buf)
	}
	return t.head
}

// Values returns the samples oldest first.
func (t *Trace) Values() []float64 {
	if !t.filled {
		return append([]float64(nil), t.buf[:t.head]...)
	}
	out := make([]float64, 0, len(t.buf))
	out = append(out, t.buf[t.head:]...)
	return append(out, t.buf[:t.head]...)
}

// Reset drops all samples.
func (t *Trace) Reset() {
	t.head = 0
	t.filled = false
}

// Bounds returns the min and max of the stored samples, widened to at least
// [-1, 1] so a flat trace still has a visible scale.
func (t *Trace) Bounds() (lo, hi float64) {
	lo, hi = -1, 1
	for _, v := range t.Values() {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// traceKey picks the observable to trace for a simulation.
func traceKey(sim core.Sim) string {
	if sim != nil && sim.Name() == "life" {
		return "population"
	}
	return "magnetization"
}
