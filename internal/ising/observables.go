package ising

import "math"

// SeriesStats summarises an energy series after burn-in.
type SeriesStats struct {
	Count    int
	Mean     float64
	Variance float64
	Min      float64
	Max      float64
}

// Summarize computes population statistics over series[burnIn:]. A burn-in
// at or beyond the series length yields a zero SeriesStats.
func Summarize(series []float64, burnIn int) SeriesStats {
	if burnIn < 0 {
		burnIn = 0
	}
	if burnIn >= len(series) {
		return SeriesStats{}
	}
	tail := series[burnIn:]
	stats := SeriesStats{Count: len(tail), Min: tail[0], Max: tail[0]}

	// Welford update.
	var mean, m2 float64
	for k, v := range tail {
		delta := v - mean
		mean += delta / float64(k+1)
		m2 += delta * (v - mean)
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = mean
	stats.Variance = m2 / float64(len(tail))
	return stats
}

// SpecificHeat returns β²·Var(E)/N², the per-site heat capacity estimate.
func SpecificHeat(stats SeriesStats, beta float64, n int) float64 {
	if n < 1 {
		return 0
	}
	return beta * beta * stats.Variance / float64(n*n)
}

// Thin keeps every stride-th entry of series together with its index, always
// including the final entry. A stride below 2 keeps everything.
func Thin(series []float64, stride int) (steps []int, values []float64) {
	if len(series) == 0 {
		return nil, nil
	}
	if stride < 2 {
		stride = 1
	}
	last := len(series) - 1
	for k := 0; k <= last; k += stride {
		steps = append(steps, k)
		values = append(values, series[k])
	}
	if steps[len(steps)-1] != last {
		steps = append(steps, last)
		values = append(values, series[last])
	}
	return steps, values
}

// Linspace returns count evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{lo}
	}
	out := make([]float64, count)
	step := (hi - lo) / float64(count-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[count-1] = hi
	return out
}

// CriticalBeta is the Onsager inverse temperature of the square lattice at
// J = 1: ln(1+√2)/2.
var CriticalBeta = math.Log(1+math.Sqrt2) / 2
