package core

import (
	"fmt"
	"strings"
)

// PinType is the palette of materials a lattice pin can be switched between.
// Pins are classified by this value rather than by material identity.
type PinType uint8

const (
	PinFuel PinType = iota
	PinModerator
	PinControl
	PinVoid

	pinTypeCount
)

// PinTypes lists every pin type in cycling order.
func PinTypes() []PinType {
	return []PinType{PinFuel, PinModerator, PinControl, PinVoid}
}

// Next returns the following pin type, wrapping around.
func (p PinType) Next() PinType {
	return (p + 1) % pinTypeCount
}

func (p PinType) String() string {
	switch p {
	case PinFuel:
		return "fuel"
	case PinModerator:
		return "moderator"
	case PinControl:
		return "control"
	case PinVoid:
		return "void"
	default:
		return fmt.Sprintf("pin(%d)", uint8(p))
	}
}

// ParsePinType accepts the lower-case names produced by String.
func ParsePinType(s string) (PinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fuel":
		return PinFuel, nil
	case "moderator":
		return PinModerator, nil
	case "control", "black":
		return PinControl, nil
	case "void":
		return PinVoid, nil
	}
	return 0, fmt.Errorf("unknown pin material %q", s)
}
