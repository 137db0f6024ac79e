package benes

import "strconv"

// Switch is the setting of one cell in the switch matrix.
//
// The 8-bit encoding matches the wire format: 0 and 1 are real settings,
// negative values are structural sentinels.
type Switch int8

const (
	// Straight passes wire A to A and B to B.
	Straight Switch = 0
	// Cross exchanges the two wires.
	Cross Switch = 1
	// Unset marks a cell no sub-network writes.
	Unset Switch = -1
	// Placeholder marks a cell reserved around a deferred two-element
	// sub-network. It never carries a signal.
	Placeholder Switch = -2
)

// IsSwitch reports whether s is a real setting (Straight or Cross).
func (s Switch) IsSwitch() bool {
	return s == Straight || s == Cross
}

// Valid reports whether s is one of the four defined codes.
func (s Switch) Valid() bool {
	return s >= Placeholder && s <= Cross
}

func (s Switch) String() string {
	switch s {
	case Straight:
		return "straight"
	case Cross:
		return "cross"
	case Unset:
		return "unset"
	case Placeholder:
		return "placeholder"
	default:
		return "Switch(" + strconv.Itoa(int(s)) + ")"
	}
}

// Symbol returns a one-rune glyph for compact matrix printing.
func (s Switch) Symbol() rune {
	switch s {
	case Straight:
		return '0'
	case Cross:
		return '1'
	case Placeholder:
		return '~'
	default:
		return '.'
	}
}

func fromBool(cross bool) Switch {
	if cross {
		return Cross
	}
	return Straight
}
