package pipeline

import (
	"slices"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/perm"
)

// Parse resolves the permutation described by opts.
func Parse(opts Options) ([]int, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	var p []int
	switch {
	case opts.Random != 0:
		p = perm.FromKey([]byte(opts.Seed), opts.Random)
		opts.Logger.Debug("drew random permutation", "n", opts.Random, "seed", opts.Seed)
	case opts.Input != "":
		if n := countValues(opts.Input); n > opts.MaxSize {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"permutation of size %d exceeds limit %d", n, opts.MaxSize)
		}
		var err error
		if p, err = io.ParsePermutation(opts.Input); err != nil {
			return nil, err
		}
	default:
		p = slices.Clone(opts.Permutation)
		if err := perm.Validate(p); err != nil {
			return nil, err
		}
	}

	if len(p) > opts.MaxSize {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"permutation of size %d exceeds limit %d", len(p), opts.MaxSize)
	}
	return p, nil
}

// countValues counts the runs of digits in s, an upper bound on the number
// of values it can decode to, without allocating.
func countValues(s string) int {
	n, inNumber := 0, false
	for i := 0; i < len(s); i++ {
		digit := s[i] >= '0' && s[i] <= '9'
		if digit && !inNumber {
			n++
		}
		inNumber = digit
	}
	return n
}
