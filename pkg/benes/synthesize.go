package benes

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/perm"
)

// scratch is the working state of one synthesis call. It is never shared
// between calls.
type scratch struct {
	m     Matrix
	perm  []int
	inv   []int
	path  []int8
	seen  []bool
	stack []visit
	// bufs holds one sub-problem buffer per recursion depth, indexed by logN.
	bufs [][]int
}

func newScratch(n int) *scratch {
	levels, columns := Dimensions(n)
	return &scratch{
		m:     NewMatrix(levels, columns),
		perm:  make([]int, n),
		inv:   make([]int, n),
		path:  make([]int8, n),
		seen:  make([]bool, n),
		stack: make([]visit, 0, 2*n),
		bufs:  make([][]int, LogCeil(n)+1),
	}
}

// buffer returns the buffer for depth logN, at least size long. Siblings run
// one after the other and their inputs live in the parent's buffer, so one
// buffer per depth is enough.
func (s *scratch) buffer(logN, size int) []int {
	if cap(s.bufs[logN]) < size {
		s.bufs[logN] = make([]int, size)
	}
	return s.bufs[logN][:size]
}

// Synthesize returns a network routing input i to the output slot that must
// hold dest's value, so that routing [0, n) yields dest.
//
// dest must be a permutation of [0, len(dest)); anything else is rejected with
// errors.ErrCodeInvalidPermutation before any work is done. A broken internal
// invariant yields errors.ErrCodeInternal and no network.
func Synthesize(dest []int) (*Network, error) {
	if err := perm.Validate(dest); err != nil {
		return nil, err
	}
	n := len(dest)
	s := newScratch(n)
	if n > 1 {
		if err := s.build(perm.Seq(n), dest, LogCeil(n), 0, 0); err != nil {
			return nil, err
		}
	}
	return &Network{N: n, Matrix: s.m}, nil
}

// SynthesizeAll synthesizes every permutation in dests concurrently, using at
// most workers goroutines (unbounded when workers <= 0). Results keep the
// order of dests. The first failure cancels the remaining work.
func SynthesizeAll(ctx context.Context, dests [][]int, workers int) ([]*Network, error) {
	nets := make([]*Network, len(dests))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, dest := range dests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			net, err := Synthesize(dest)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "permutation %d", i)
			}
			nets[i] = net
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nets, nil
}
