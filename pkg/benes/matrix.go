package benes

import (
	"slices"
	"strings"

	"github.com/matzehuels/permnet/pkg/errors"
)

// LogCeil returns the smallest L with 2^L >= n. LogCeil(1) is 0.
func LogCeil(n int) int {
	l := 0
	for (1 << l) < n {
		l++
	}
	return l
}

// Dimensions returns the matrix shape for a network over n inputs:
// 2⌈log2 n⌉-1 levels by ⌊n/2⌋ columns. Networks with n <= 1 have no levels.
func Dimensions(n int) (levels, columns int) {
	if n <= 1 {
		return 0, 0
	}
	return 2*LogCeil(n) - 1, n / 2
}

// Matrix is a levelled grid of switch settings, indexed [level][column].
type Matrix [][]Switch

// NewMatrix allocates a levels×columns matrix filled with Unset.
func NewMatrix(levels, columns int) Matrix {
	cells := make([]Switch, levels*columns)
	for i := range cells {
		cells[i] = Unset
	}
	m := make(Matrix, levels)
	for l := range m {
		m[l] = cells[l*columns : (l+1)*columns : (l+1)*columns]
	}
	return m
}

// Levels returns the number of levels.
func (m Matrix) Levels() int { return len(m) }

// Columns returns the number of switch columns per level.
func (m Matrix) Columns() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// At returns the switch at (level, column).
func (m Matrix) At(level, column int) Switch { return m[level][column] }

// Count returns how many cells hold s.
func (m Matrix) Count(s Switch) int {
	c := 0
	for _, row := range m {
		for _, v := range row {
			if v == s {
				c++
			}
		}
	}
	return c
}

// Codes returns the matrix as raw 8-bit codes.
func (m Matrix) Codes() [][]int8 {
	out := make([][]int8, len(m))
	for l, row := range m {
		out[l] = make([]int8, len(row))
		for c, v := range row {
			out[l][c] = int8(v)
		}
	}
	return out
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for l, row := range m {
		out[l] = slices.Clone(row)
	}
	return out
}

// String renders one line per level using [Switch.Symbol].
func (m Matrix) String() string {
	var b strings.Builder
	for l, row := range m {
		if l > 0 {
			b.WriteByte('\n')
		}
		for _, v := range row {
			b.WriteRune(v.Symbol())
		}
	}
	return b.String()
}

// Network is a synthesized permutation network over N inputs.
type Network struct {
	N      int
	Matrix Matrix
}

// NewNetwork builds a Network from raw codes, for example ones read back from
// disk. The shape must match [Dimensions] for n, every code must be defined,
// and every cell the topology wires must hold a real setting.
func NewNetwork(n int, codes [][]int8) (*Network, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidNetwork, "network size must be at least 1, got %d", n)
	}
	levels, columns := Dimensions(n)
	if len(codes) != levels {
		return nil, errors.New(errors.ErrCodeInvalidNetwork,
			"network of size %d needs %d levels, got %d", n, levels, len(codes))
	}
	m := NewMatrix(levels, columns)
	for l, row := range codes {
		if len(row) != columns {
			return nil, errors.New(errors.ErrCodeInvalidNetwork,
				"level %d needs %d columns, got %d", l, columns, len(row))
		}
		for c, v := range row {
			s := Switch(v)
			if !s.Valid() {
				return nil, errors.New(errors.ErrCodeInvalidNetwork,
					"undefined switch code %d at level %d column %d", v, l, c)
			}
			m[l][c] = s
		}
	}
	for _, level := range Topology(n) {
		for _, g := range level {
			if !m[g.Level][g.Column].IsSwitch() {
				return nil, errors.New(errors.ErrCodeInvalidNetwork,
					"wired cell at level %d column %d holds %s", g.Level, g.Column, m[g.Level][g.Column])
			}
		}
	}
	return &Network{N: n, Matrix: m}, nil
}

// Levels returns the number of levels in the network.
func (n *Network) Levels() int { return n.Matrix.Levels() }

// Columns returns the number of switch columns per level.
func (n *Network) Columns() int { return n.Matrix.Columns() }

// Switches returns the number of real switches, excluding sentinel cells.
func (n *Network) Switches() int {
	return n.Matrix.Count(Straight) + n.Matrix.Count(Cross)
}
