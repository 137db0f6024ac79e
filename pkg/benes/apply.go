package benes

import (
	"slices"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/perm"
)

// Apply routes values through net. Output slot i receives values[dest[i]],
// where dest is the permutation the network was synthesized for.
func Apply[T any](net *Network, values []T) ([]T, error) {
	if len(values) != net.N {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"network routes %d values, got %d", net.N, len(values))
	}
	out := slices.Clone(values)
	err := route(net, func(_ int, g Gate) {
		out[g.A], out[g.B] = out[g.B], out[g.A]
	}, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Trace routes values through net and returns the wire vector before the
// first level and after every level, so len(result) == net.Levels()+1.
func Trace[T any](net *Network, values []T) ([][]T, error) {
	if len(values) != net.N {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"network routes %d values, got %d", net.N, len(values))
	}
	cur := slices.Clone(values)
	states := [][]T{slices.Clone(cur)}
	err := route(net, func(_ int, g Gate) {
		cur[g.A], cur[g.B] = cur[g.B], cur[g.A]
	}, func(int) {
		states = append(states, slices.Clone(cur))
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// route calls swap for every crossed gate, level by level, and done after
// each level when non-nil.
func route(net *Network, swap func(level int, g Gate), done func(level int)) error {
	topo := Topology(net.N)
	if net.Matrix.Levels() != len(topo) {
		return errors.New(errors.ErrCodeInvalidNetwork,
			"network of size %d has %d levels", net.N, net.Matrix.Levels())
	}
	_, columns := Dimensions(net.N)
	for l, row := range net.Matrix {
		if len(row) != columns {
			return errors.New(errors.ErrCodeInvalidNetwork,
				"level %d has %d columns, want %d", l, len(row), columns)
		}
	}
	for l, gates := range topo {
		for _, g := range gates {
			switch sw := net.Matrix[l][g.Column]; sw {
			case Cross:
				swap(l, g)
			case Straight:
			default:
				return errors.New(errors.ErrCodeInvalidNetwork,
					"wired cell at level %d column %d holds %s", l, g.Column, sw)
			}
		}
		if done != nil {
			done(l)
		}
	}
	return nil
}

// Permutation returns the permutation net realizes: Apply(net, Seq(N)).
func (n *Network) Permutation() ([]int, error) {
	return Apply(n, perm.Seq(n.N))
}

// Verify checks that net routes the identity vector to dest.
func Verify(net *Network, dest []int) error {
	got, err := net.Permutation()
	if err != nil {
		return err
	}
	if !slices.Equal(got, dest) {
		return errors.New(errors.ErrCodeInternal, "network realizes %v, want %v", got, dest)
	}
	return nil
}
