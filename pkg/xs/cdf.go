package xs

import (
	"fmt"
	"sort"
)

// Interaction enumerates collision outcomes.
type Interaction uint8

const (
	Scatter Interaction = iota
	Fission
	Capture
)

func (i Interaction) String() string {
	switch i {
	case Scatter:
		return "scatter"
	case Fission:
		return "fission"
	case Capture:
		return "capture"
	default:
		return fmt.Sprintf("interaction(%d)", uint8(i))
	}
}

// InteractionCDF splits the unit interval into scatter, fission and capture
// bins. Capture takes all residual probability mass.
type InteractionCDF struct {
	cdf [3]float64
}

// NewInteractionCDF builds the CDF from per-group rates. capture is accepted
// for symmetry but the last boundary is always 1.
func NewInteractionCDF(total, scatter, fission, capture float64) InteractionCDF {
	var c InteractionCDF
	c.cdf[0] = scatter / total
	c.cdf[1] = c.cdf[0] + fission/total
	if c.cdf[0] > 1 {
		c.cdf[0] = 1
	}
	if c.cdf[1] > 1 {
		c.cdf[1] = 1
	}
	c.cdf[2] = 1
	return c
}

// Sample classifies r in [0, 1).
func (c InteractionCDF) Sample(r float64) Interaction {
	if r < c.cdf[0] {
		return Scatter
	}
	if r < c.cdf[1] {
		return Fission
	}
	return Capture
}

// Bounds returns the three cumulative boundaries.
func (c InteractionCDF) Bounds() [3]float64 { return c.cdf }

// ScatterCDF samples the destination group of a scattering event.
type ScatterCDF struct {
	cdf []float64
}

// NewScatterCDF builds the cumulative distribution over destination groups
// from one origin group's outscatter row. A row with no outscatter keeps the
// particle in its origin group.
func NewScatterCDF(row []float64, origin int) ScatterCDF {
	cdf := make([]float64, len(row))
	total := 0.0
	for _, v := range row {
		total += v
	}
	if total <= 0 {
		for g := range cdf {
			if g >= origin {
				cdf[g] = 1
			}
		}
		return ScatterCDF{cdf: cdf}
	}
	prev := 0.0
	for g, v := range row {
		prev += v
		cdf[g] = prev / total
	}
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1
	}
	return ScatterCDF{cdf: cdf}
}

// Sample returns the first group whose cumulative value is >= r, skipping
// groups with zero probability. Values at or beyond the last bin land in the
// last group.
func (c ScatterCDF) Sample(r float64) int {
	last := len(c.cdf) - 1
	g := sort.SearchFloat64s(c.cdf, r)
	if g >= last {
		return last
	}
	prev := 0.0
	if g > 0 {
		prev = c.cdf[g-1]
	}
	for g < last && c.cdf[g] <= prev {
		g++
	}
	return g
}

// Values returns the cumulative values.
func (c ScatterCDF) Values() []float64 { return c.cdf }
