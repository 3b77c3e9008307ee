package playbook

import (
	"fmt"

	"mc-lattice/internal/core"
	"mc-lattice/pkg/geom"
)

type noop struct{}

func (noop) Execute(Target) {}
func (noop) String() string { return "wait" }

type halt struct{}

func (halt) Execute(Target) {}
func (halt) String() string { return "halt" }

type reset struct{}

func (reset) Execute(t Target) { t.SoftReset() }
func (reset) String() string   { return "reset" }

type toggleBoundary struct{}

func (toggleBoundary) Execute(t Target) { t.ToggleBoundaryCondition() }
func (toggleBoundary) String() string   { return "toggle boundary condition" }

type togglePause struct{}

func (togglePause) Execute(t Target) { t.TogglePause() }
func (togglePause) String() string   { return "toggle pause" }

type cycleShape struct {
	at geom.Vec2
}

func (c cycleShape) Execute(t Target) { t.CycleShapeAt(c.at) }
func (c cycleShape) String() string   { return fmt.Sprintf("cycle material at %v", c.at) }

type cycleAll struct{}

func (cycleAll) Execute(t Target) { t.CycleAll() }
func (cycleAll) String() string   { return "cycle all pin materials" }

type setMaterial struct {
	at  geom.Vec2
	pin core.PinType
}

func (c setMaterial) Execute(t Target) { t.SetMaterialAt(c.at, c.pin) }
func (c setMaterial) String() string {
	return fmt.Sprintf("set material to %s at %v", c.pin, c.at)
}

type addParticles struct {
	at geom.Vec2
	n  int
}

func (c addParticles) Execute(t Target) { t.AddParticles(c.at, c.n) }
func (c addParticles) String() string {
	return fmt.Sprintf("add %d particles at %v", c.n, c.at)
}

type setSource struct {
	at geom.Vec2
}

func (c setSource) Execute(t Target) { t.SetSource(c.at) }
func (c setSource) String() string   { return fmt.Sprintf("set source at %v", c.at) }

type clearSource struct{}

func (clearSource) Execute(t Target) { t.ClearSource() }
func (clearSource) String() string   { return "clear source" }
