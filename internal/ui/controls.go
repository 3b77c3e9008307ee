package ui

import (
	"math"
	"strconv"

	"mc-lattice/internal/core"
)

// Source is what the HUD reads and edits.
type Source interface {
	Name() string
	Parameters() core.ParameterSnapshot
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
	Spectrum() []int
	PopulationHistory() []int
}

// control is one adjustable HUD row and its last known value.
type control struct {
	core.ParameterControl
	value float64
	known bool
}

func newControls(defs []core.ParameterControl) []control {
	out := make([]control, len(defs))
	for i, d := range defs {
		out[i] = control{ParameterControl: d}
	}
	return out
}

// refresh copies current values out of the snapshot. Rows whose key is missing
// or unparsable become unknown and are not adjustable.
func refresh(controls []control, snap core.ParameterSnapshot) {
	for i := range controls {
		c := &controls[i]
		p, ok := snap.Lookup(c.Key)
		if !ok {
			c.known = false
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		c.value, c.known = v, err == nil
	}
}

func (c control) increment() float64 {
	switch {
	case c.Type == core.ParamTypeInt:
		return max(math.Round(c.Step), 1)
	case c.Step > 0:
		return c.Step
	}
	return 0.05
}

// next returns the value one click away in direction dir, clamped to the
// control bounds, and whether that differs from the current value.
func (c control) next(dir int) (float64, bool) {
	if !c.known || dir == 0 {
		return c.value, false
	}
	v := c.value + float64(dir)*c.increment()
	if c.HasMin {
		v = max(v, c.Min)
	}
	if c.HasMax {
		v = min(v, c.Max)
	}
	return v, math.Abs(v-c.value) > 1e-9
}

// apply pushes one click to src and records the new value when accepted.
func (c *control) apply(src Source, dir int) bool {
	v, ok := c.next(dir)
	if !ok {
		return false
	}
	switch c.Type {
	case core.ParamTypeInt:
		ok = src.SetIntParameter(c.Key, int(math.Round(v)))
	case core.ParamTypeFloat:
		ok = src.SetFloatParameter(c.Key, v)
	default:
		ok = false
	}
	if ok {
		c.value = v
	}
	return ok
}

func (c control) text() string {
	if !c.known {
		return "--"
	}
	if c.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(c.value)))
	}
	prec := 1
	switch step := c.increment(); {
	case step < 0.001:
		prec = 4
	case step < 0.01:
		prec = 3
	case step < 0.1:
		prec = 2
	}
	return strconv.FormatFloat(c.value, 'f', prec, 64)
}
