package lattice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, SinglePinConfig().Validate())
}

func TestFromMapOverrides(t *testing.T) {
	c, err := FromMap(map[string]string{
		"seed":       "42",
		"boundary":   "Reflective",
		"base_speed": "2.5",
		"pins_x":     "5",
		"max_steps":  "100",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, "reflective", c.Boundary)
	assert.Equal(t, 2.5, c.Params.BaseSpeed)
	assert.Equal(t, 5, c.PinsX)
	assert.Equal(t, 100, c.Params.MaxSteps)
}

func TestFromMapSinglePinDefaults(t *testing.T) {
	c, err := FromMap(map[string]string{"layout": LayoutSinglePin})
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.PinRadius)
	assert.Equal(t, 10.0, c.Width)
}

func TestFromMapErrors(t *testing.T) {
	cases := []map[string]string{
		{"seed": "abc"},
		{"colour": "red"},
		{"boundary": "periodic"},
		{"layout": "hexagonal"},
		{"pin_radius": "0.6"},
		{"base_speed": "0"},
		{"max_history": "1"},
	}
	for _, m := range cases {
		_, err := FromMap(m)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%v", m)
	}
}

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig(`
[Lattice]
Layout = single-pin
PinRadius = 1
Boundary = Reflective
Seed = 99

[Physics]
BaseSpeed = 2
ResetParticles = 0
`)
	require.NoError(t, err)
	assert.Equal(t, LayoutSinglePin, c.Layout)
	assert.Equal(t, "reflective", c.Boundary)
	assert.Equal(t, int64(99), c.Seed)
	assert.Equal(t, 2.0, c.Params.BaseSpeed)
	assert.Equal(t, 0, c.Params.ResetParticles)
	// Untouched keys keep their defaults.
	assert.Equal(t, "UO2", c.Fuel)
	assert.Equal(t, 1000, c.Params.MaxHistory)
}

func TestParseConfigExample(t *testing.T) {
	c, err := ParseConfig(ExampleConfigFile)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Lattice]\nPinsX = 3\nPinsY = 4\n"), 0o644))
	c, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.PinsX)
	assert.Equal(t, 4, c.PinsY)

	require.NoError(t, os.WriteFile(path, []byte("[Lattice]\nNoSuchKey = 1\n"), 0o644))
	_, err = ReadConfigFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ReadConfigFile(filepath.Join(t.TempDir(), "missing.ini"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseBoundaryCondition(t *testing.T) {
	bc, err := ParseBoundaryCondition("REFLECTIVE")
	require.NoError(t, err)
	assert.Equal(t, Reflective, bc)
	assert.Equal(t, Vacuum, bc.Next())
	_, err = ParseBoundaryCondition("periodic")
	assert.Error(t, err)
}

func TestMaterialTablesConfig(t *testing.T) {
	c, err := FromMap(map[string]string{"materials": "Graphite:g.txt, Steel : s.txt"})
	require.NoError(t, err)
	tables, err := c.materialTables()
	require.NoError(t, err)
	assert.Equal(t, []materialTable{{"Graphite", "g.txt"}, {"Steel", "s.txt"}}, tables)

	_, err = FromMap(map[string]string{"materials": "Graphite"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	c, err = ParseConfig("[Lattice]\nMaterialTables = Graphite:g.txt\n")
	require.NoError(t, err)
	assert.Equal(t, "Graphite:g.txt", c.MaterialTables)
}

func TestMaterialTableLoadedIntoLibrary(t *testing.T) {
	var rows string
	for g := 0; g < 7; g++ {
		rows += "0.02 0 0 0"
		for to := 0; to < 7; to++ {
			if to == g {
				rows += " 0.5"
			} else {
				rows += " 0"
			}
		}
		rows += "\n"
	}
	fname := filepath.Join(t.TempDir(), "graphite.txt")
	require.NoError(t, os.WriteFile(fname, []byte(rows), 0o644))

	cfg := SinglePinConfig()
	cfg.MaterialTables = "Graphite:" + fname
	cfg.Background = "Graphite"
	st, err := NewWithConfig(cfg)
	require.NoError(t, err)
	_, bg := st.Mesh().Background()
	assert.Equal(t, "Graphite", bg.Name)
	assert.Equal(t, bg, st.Library().MustByName("Graphite"))
}

func TestShippedConfig(t *testing.T) {
	c, err := ReadConfigFile(filepath.Join("..", "..", "..", "configs", "assembly.ini"))
	require.NoError(t, err)
	assert.Equal(t, 1.26, c.PinPitch)
	assert.Equal(t, "reflective", c.Boundary)
	assert.Equal(t, 100, c.Params.ResetParticles)
	assert.Equal(t, 6, c.Params.SourceGroup)
}
