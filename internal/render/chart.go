package render

import (
	"errors"
	"fmt"
	"io"

	"spinlab/internal/ising"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySeries is returned when a chart has nothing to plot.
var ErrEmptySeries = errors.New("render: empty series")

const (
	chartWidth  = 960
	chartHeight = 360
)

// EnergyChart renders the energy series as a PNG line chart, plotting every
// stride-th step.
func EnergyChart(w io.Writer, energies []float64, stride int) error {
	if len(energies) < 2 {
		return ErrEmptySeries
	}
	steps, values := ising.Thin(energies, stride)
	return EnergyChartPoints(w, steps, values)
}

// EnergyChartPoints renders an already thinned series, with steps[i] the
// step at which values[i] was recorded.
func EnergyChartPoints(w io.Writer, steps []int, values []float64) error {
	if len(steps) < 2 || len(steps) != len(values) {
		return ErrEmptySeries
	}
	xs := make([]float64, len(steps))
	for i, s := range steps {
		xs[i] = float64(s)
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "energy",
			Style: chart.Style{FontSize: 10.0},
			Range: flatRange(values),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "E",
				XValues: xs,
				YValues: values,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: energy chart: %w", err)
	}
	return nil
}

// MagnetizationChart plots |m| and the specific heat of a sweep against β,
// with a marker at the critical point.
func MagnetizationChart(w io.Writer, points []ising.SweepPoint) error {
	if len(points) < 2 {
		return ErrEmptySeries
	}
	betas := make([]float64, len(points))
	absM := make([]float64, len(points))
	heat := make([]float64, len(points))
	for i, p := range points {
		betas[i] = p.Beta
		absM[i] = p.AbsMagnetization
		heat[i] = p.SpecificHeat
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:  "beta",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name:  "|m|",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "c",
			Style: chart.Style{FontSize: 10.0},
			Range: flatRange(heat),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "|m|",
				XValues: betas,
				YValues: absM,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "specific heat",
				YAxis:   chart.YAxisSecondary,
				XValues: betas,
				YValues: heat,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "critical beta",
				XValues: []float64{ising.CriticalBeta, ising.CriticalBeta},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: drawing.Color{R: 128, G: 128, B: 128, A: 255}, StrokeWidth: 1.0, StrokeDashArray: []float64{4, 4}},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: magnetization chart: %w", err)
	}
	return nil
}

// flatRange pads a constant series so the axis has a non-zero span. go-chart
// refuses to render a zero-height range.
func flatRange(values []float64) chart.Range {
	for _, v := range values[1:] {
		if v != values[0] {
			return nil
		}
	}
	return &chart.ContinuousRange{Min: values[0] - 1, Max: values[0] + 1}
}
