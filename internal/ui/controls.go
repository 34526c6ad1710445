package ui

import (
	"math"
	"strconv"

	"spinlab/internal/core"
)

const defaultFloatStep = 0.05

// nextValue moves current one step in direction dir and clamps it to the
// control bounds. ok is false when the value would not change.
func nextValue(ctrl core.ParameterControl, current float64, dir int) (target float64, ok bool) {
	if dir == 0 {
		return current, false
	}
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := math.Round(ctrl.Step)
		if step <= 0 {
			step = 1
		}
		target = ctrl.Clamp(math.Round(current) + float64(dir)*step)
		return target, int(target) != int(math.Round(current))
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = defaultFloatStep
		}
		target = ctrl.Clamp(current + float64(dir)*step)
		return target, math.Abs(target-current) >= 1e-9
	default:
		return current, false
	}
}

// apply pushes target into sim through the setter matching the control type.
func apply(sim core.Sim, ctrl core.ParameterControl, target float64) bool {
	switch ctrl.Type {
	case core.ParamTypeInt:
		if setter, ok := sim.(core.IntParameterSetter); ok {
			return setter.SetIntParameter(ctrl.Key, int(target))
		}
	case core.ParamTypeFloat:
		if setter, ok := sim.(core.FloatParameterSetter); ok {
			return setter.SetFloatParameter(ctrl.Key, target)
		}
	}
	return false
}

// Adjust steps the control named key of sim by one increment in direction
// dir. It reports whether the simulation accepted the new value.
func Adjust(sim core.Sim, key string, dir int) bool {
	controls, ok := sim.(core.ParameterControlsProvider)
	if !ok {
		return false
	}
	params, ok := sim.(core.ParameterProvider)
	if !ok {
		return false
	}
	p, ok := params.Parameters().Lookup(key)
	if !ok {
		return false
	}
	current, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return false
	}
	for _, ctrl := range controls.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		target, changed := nextValue(ctrl, current, dir)
		return changed && apply(sim, ctrl, target)
	}
	return false
}

// formatValue renders a control value with a precision matching its step.
func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
