package xs

import (
	"errors"
	"fmt"
	"math"

	"mc-lattice/pkg/core"
)

var (
	// ErrInvalidMaterial reports malformed cross section tables.
	ErrInvalidMaterial = errors.New("xs: invalid material")
	// ErrZeroTotal reports a group whose total cross section is not positive,
	// which would make the free-flight distance undefined.
	ErrZeroTotal = errors.New("xs: total cross section must be positive")
)

// MaterialID is the handle a Library assigns to each material.
type MaterialID int

// NoMaterial marks a material that has not been added to a library.
const NoMaterial MaterialID = -1

// Material holds multigroup cross sections and the sampling tables derived
// from them. Materials are immutable once built.
type Material struct {
	ID     MaterialID
	Name   string
	Groups int

	Total      []float64
	Absorption []float64
	NuFission  []float64
	Fission    []float64
	Chi        []float64
	// Scatter is indexed (to, from).
	Scatter *core.Grid[float64]

	Interaction []InteractionCDF
	Outscatter  []ScatterCDF
}

// NewMaterial validates the raw tables and precomputes the sampling CDFs.
// scat is indexed scat[to][from].
func NewMaterial(name string, abs, nufis, fis, chi []float64, scat [][]float64) (*Material, error) {
	ng := len(abs)
	if ng == 0 {
		return nil, fmt.Errorf("%w %q: no energy groups", ErrInvalidMaterial, name)
	}
	for label, arr := range map[string][]float64{"nu-fission": nufis, "fission": fis, "chi": chi} {
		if len(arr) != ng {
			return nil, fmt.Errorf("%w %q: %s has %d groups, want %d", ErrInvalidMaterial, name, label, len(arr), ng)
		}
	}
	if len(scat) != ng {
		return nil, fmt.Errorf("%w %q: scatter matrix has %d rows, want %d", ErrInvalidMaterial, name, len(scat), ng)
	}
	for to, row := range scat {
		if len(row) != ng {
			return nil, fmt.Errorf("%w %q: scatter row %d has %d columns, want %d", ErrInvalidMaterial, name, to, len(row), ng)
		}
		if err := checkValues(name, "scatter", row); err != nil {
			return nil, err
		}
	}
	for _, arr := range []struct {
		label string
		vals  []float64
	}{{"absorption", abs}, {"nu-fission", nufis}, {"fission", fis}, {"chi", chi}} {
		if err := checkValues(name, arr.label, arr.vals); err != nil {
			return nil, err
		}
	}

	m := &Material{
		ID:         NoMaterial,
		Name:       name,
		Groups:     ng,
		Total:      make([]float64, ng),
		Absorption: append([]float64(nil), abs...),
		NuFission:  append([]float64(nil), nufis...),
		Fission:    append([]float64(nil), fis...),
		Chi:        append([]float64(nil), chi...),
		Scatter:    core.NewGrid[float64](ng, ng),
	}

	for from := 0; from < ng; from++ {
		for to := 0; to < ng; to++ {
			m.Scatter.Set(to, from, scat[to][from])
		}
	}

	m.Outscatter = make([]ScatterCDF, ng)
	for from := 0; from < ng; from++ {
		m.Outscatter[from] = NewScatterCDF(m.Scatter.Column(from), from)
	}

	for g := 0; g < ng; g++ {
		m.Total[g] = m.Absorption[g] + m.OutscatterTotal(g)
		if !(m.Total[g] > 0) {
			return nil, fmt.Errorf("%w: material %q group %d", ErrZeroTotal, name, g)
		}
	}

	m.Interaction = make([]InteractionCDF, ng)
	for g := 0; g < ng; g++ {
		m.Interaction[g] = NewInteractionCDF(m.Total[g], m.OutscatterTotal(g), m.Fission[g], m.Fission[g]+m.Absorption[g])
	}
	return m, nil
}

// MustMaterial is NewMaterial for compiled-in tables.
func MustMaterial(name string, abs, nufis, fis, chi []float64, scat [][]float64) *Material {
	m, err := NewMaterial(name, abs, nufis, fis, chi, scat)
	if err != nil {
		panic(err)
	}
	return m
}

// OutscatterTotal returns the sum of the scatter matrix column for group g.
func (m *Material) OutscatterTotal(g int) float64 {
	sum := 0.0
	for to := 0; to < m.Groups; to++ {
		sum += m.Scatter.At(to, g)
	}
	return sum
}

// Fissile reports whether any group has a non-zero fission cross section.
func (m *Material) Fissile() bool {
	for _, f := range m.Fission {
		if f > 0 {
			return true
		}
	}
	return false
}

func checkValues(name, label string, vals []float64) error {
	for g, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w %q: %s[%d] = %v", ErrInvalidMaterial, name, label, g, v)
		}
	}
	return nil
}
