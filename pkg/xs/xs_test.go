package xs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestC5G7TotalIsAbsorptionPlusOutscatter(t *testing.T) {
	lib := C5G7()
	require.Equal(t, 7, lib.Groups())
	for _, name := range []string{"UO2", "Moderator", "Black", "Void"} {
		m := lib.MustByName(name)
		for g := 0; g < m.Groups; g++ {
			want := m.Absorption[g] + m.OutscatterTotal(g)
			assert.InDelta(t, want, m.Total[g], 1e-12, "%s group %d", name, g)
			assert.Greater(t, m.Total[g], 0.0)
		}
	}
}

func TestInteractionCDFBounds(t *testing.T) {
	lib := C5G7()
	for _, name := range lib.Names() {
		m := lib.MustByName(name)
		for g, cdf := range m.Interaction {
			b := cdf.Bounds()
			assert.LessOrEqual(t, b[0], b[1], "%s group %d", name, g)
			assert.LessOrEqual(t, b[1], b[2], "%s group %d", name, g)
			assert.Equal(t, 1.0, b[2])
		}
	}
}

func TestInteractionCDFSample(t *testing.T) {
	c := NewInteractionCDF(10, 5, 2, 5)
	assert.Equal(t, Scatter, c.Sample(0))
	assert.Equal(t, Scatter, c.Sample(0.49))
	assert.Equal(t, Fission, c.Sample(0.5))
	assert.Equal(t, Fission, c.Sample(0.69))
	assert.Equal(t, Capture, c.Sample(0.7))
	assert.Equal(t, Capture, c.Sample(0.999999))

	// Rounding slack above one is clamped so capture stays reachable.
	over := NewInteractionCDF(1, 0.7, 0.31, 0)
	assert.Equal(t, 1.0, over.Bounds()[1])
	assert.Equal(t, Fission, over.Sample(0.99))
}

func TestInteractionCDFAlwaysClassified(t *testing.T) {
	m := C5G7().MustByName("UO2")
	for g := 0; g < m.Groups; g++ {
		for i := 0; i < 1000; i++ {
			r := float64(i) / 1000
			got := m.Interaction[g].Sample(r)
			assert.Contains(t, []Interaction{Scatter, Fission, Capture}, got)
		}
	}
}

func TestScatterCDFInRange(t *testing.T) {
	lib := C5G7()
	for _, name := range []string{"UO2", "Moderator", "Black", "Void"} {
		m := lib.MustByName(name)
		for g := 0; g < m.Groups; g++ {
			for i := 0; i < 1000; i++ {
				r := float64(i) / 1000
				out := m.Outscatter[g].Sample(r)
				require.GreaterOrEqual(t, out, 0)
				require.Less(t, out, m.Groups)
			}
			out := m.Outscatter[g].Sample(1.0)
			assert.GreaterOrEqual(t, out, 0)
			assert.Less(t, out, m.Groups)
		}
	}
}

func TestScatterCDFLowerBound(t *testing.T) {
	c := NewScatterCDF([]float64{1, 0, 3}, 0)
	assert.Equal(t, []float64{0.25, 0.25, 1}, c.Values())
	assert.Equal(t, 0, c.Sample(0.1))
	assert.Equal(t, 0, c.Sample(0.25))
	assert.Equal(t, 2, c.Sample(0.26))
	assert.Equal(t, 2, c.Sample(1.5))
}

func TestScatterCDFEmptyRowStaysInGroup(t *testing.T) {
	c := NewScatterCDF([]float64{0, 0, 0, 0}, 2)
	assert.Equal(t, 0.0, c.Values()[1])
	assert.Equal(t, 2, c.Sample(0))
	assert.Equal(t, 2, c.Sample(0.3))
	assert.Equal(t, 2, c.Sample(0.999))
}

func TestScatterCDFSkipsEmptyLeadingGroups(t *testing.T) {
	c := NewScatterCDF([]float64{0, 0, 2, 2}, 0)
	assert.Equal(t, 2, c.Sample(0))
	assert.Equal(t, 2, c.Sample(0.5))
	assert.Equal(t, 3, c.Sample(0.51))
}

func TestNewMaterialValidation(t *testing.T) {
	one := []float64{1}
	_, err := NewMaterial("empty", nil, nil, nil, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidMaterial))

	_, err = NewMaterial("short", []float64{1, 1}, one, one, one, [][]float64{{0, 0}, {0, 0}})
	assert.True(t, errors.Is(err, ErrInvalidMaterial))

	_, err = NewMaterial("negative", []float64{-1}, []float64{0}, []float64{0}, []float64{0}, [][]float64{{0}})
	assert.True(t, errors.Is(err, ErrInvalidMaterial))

	_, err = NewMaterial("vacuum", []float64{0}, []float64{0}, []float64{0}, []float64{0}, [][]float64{{0}})
	assert.True(t, errors.Is(err, ErrZeroTotal))

	m, err := NewMaterial("ok", []float64{0.5}, []float64{0}, []float64{0}, []float64{0}, [][]float64{{0.5}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Total[0])
	assert.Equal(t, NoMaterial, m.ID)
}

func TestLibraryRegistry(t *testing.T) {
	lib := C5G7()
	uo2, err := lib.ByName("UO2")
	require.NoError(t, err)
	assert.Equal(t, uo2, lib.ByID(uo2.ID))
	assert.True(t, uo2.Fissile())

	control := lib.MustByName("Control")
	assert.Equal(t, lib.MustByName("Black"), control)

	_, err = lib.ByName("Plutonium")
	assert.True(t, errors.Is(err, ErrUnknownMaterial))
	assert.Nil(t, lib.ByID(99))
	assert.Panics(t, func() { lib.MustByName("Plutonium") })

	_, err = lib.Add(uo2)
	assert.True(t, errors.Is(err, ErrDuplicateMaterial))

	two := MustMaterial("two", []float64{1, 1}, []float64{0, 0}, []float64{0, 0}, []float64{0, 0}, [][]float64{{0, 0}, {0, 0}})
	_, err = lib.Add(two)
	assert.True(t, errors.Is(err, ErrGroupMismatch))

	assert.True(t, errors.Is(NewLibrary("none").Validate(), ErrEmptyLibrary))
	assert.NoError(t, lib.Validate())

	got, err := Lookup("C5G7")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())
	_, err = Lookup("nope")
	assert.Error(t, err)
}
