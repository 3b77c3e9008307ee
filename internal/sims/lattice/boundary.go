package lattice

import (
	"fmt"
	"strings"
)

// BoundaryCondition selects how particles leaving the domain are treated.
type BoundaryCondition uint8

const (
	// Vacuum removes escaping particles and tallies them as leaks.
	Vacuum BoundaryCondition = iota
	// Reflective mirrors escaping particles back into the domain.
	Reflective
)

func (b BoundaryCondition) String() string {
	switch b {
	case Vacuum:
		return "vacuum"
	case Reflective:
		return "reflective"
	default:
		return fmt.Sprintf("boundary(%d)", uint8(b))
	}
}

// Next returns the other boundary condition.
func (b BoundaryCondition) Next() BoundaryCondition {
	if b == Vacuum {
		return Reflective
	}
	return Vacuum
}

// ParseBoundaryCondition accepts the names produced by String.
func ParseBoundaryCondition(s string) (BoundaryCondition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vacuum", "":
		return Vacuum, nil
	case "reflective", "reflect":
		return Reflective, nil
	}
	return Vacuum, fmt.Errorf("unknown boundary condition %q", s)
}

// Tallies counts interaction outcomes since the last reset.
type Tallies struct {
	Scatter int `json:"scatter"`
	Capture int `json:"capture"`
	Fission int `json:"fission"`
	Leak    int `json:"leak"`
}

// Total returns the number of recorded events.
func (t Tallies) Total() int {
	return t.Scatter + t.Capture + t.Fission + t.Leak
}
