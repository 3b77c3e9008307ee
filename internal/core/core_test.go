package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinTypeCycle(t *testing.T) {
	p := PinFuel
	seen := []PinType{}
	for i := 0; i < 4; i++ {
		seen = append(seen, p)
		p = p.Next()
	}
	assert.Equal(t, PinTypes(), seen)
	assert.Equal(t, PinFuel, p)
}

func TestParsePinType(t *testing.T) {
	for _, pt := range PinTypes() {
		got, err := ParsePinType(pt.String())
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
	got, err := ParsePinType(" Black ")
	require.NoError(t, err)
	assert.Equal(t, PinControl, got)

	_, err = ParsePinType("plutonium")
	assert.Error(t, err)
}

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(100, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	// The first call runs the primed step.
	assert.Equal(t, 1, fs.Due())
	assert.Equal(t, 0, fs.Due())

	clock = clock.Add(250 * time.Millisecond)
	assert.Equal(t, 2, fs.Due())

	clock = clock.Add(10 * time.Second)
	assert.Equal(t, fs.MaxCatchUp, fs.Due())
	assert.Equal(t, 0, fs.Due())

	fs.SetRate(0)
	assert.Equal(t, 20*time.Millisecond, fs.Period())
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{IntParam("n", "N", 3)}},
		{Name: "b", Params: []Parameter{FloatParam("x", "X", 0.5), BoolParam("on", "On", true)}},
	}}
	p, ok := snap.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "0.5", p.Value)
	assert.Equal(t, ParamTypeFloat, p.Type)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}

type stubSim struct{}

func (stubSim) Name() string   { return "stub" }
func (stubSim) Bounds() Bounds { return Bounds{W: 1, H: 1} }
func (stubSim) Reset(int64)    {}
func (stubSim) Step()          {}

func TestRegistry(t *testing.T) {
	Register("stub-test", func(map[string]string) (Sim, error) { return stubSim{}, nil })
	Register("", nil)

	s, err := New("stub-test", nil)
	require.NoError(t, err)
	assert.Equal(t, "stub", s.Name())
	assert.Contains(t, Names(), "stub-test")

	_, err = New("does-not-exist", nil)
	assert.Error(t, err)
}
