package benes

import "github.com/matzehuels/permnet/pkg/errors"

// mapPositions fills s.perm and s.inv for the sub-problem (src, dest).
//
// Labels are drawn from the top-level space [0, s.n), so s.inv is first used
// as a label-to-position table for src. Afterwards perm[o] is the input
// position feeding output o and inv[i] the output position fed by input i.
func (s *scratch) mapPositions(src, dest []int) error {
	m := len(src)
	if len(dest) != m {
		return errors.New(errors.ErrCodeInternal, "sub-problem lists differ in length: %d vs %d", m, len(dest))
	}
	for i, label := range src {
		s.inv[label] = i
	}
	perm := s.perm[:m]
	for i, label := range dest {
		perm[i] = s.inv[label]
	}

	seen := s.seen[:m]
	clear(seen)
	for o, i := range perm {
		if i < 0 || i >= m || src[i] != dest[o] || seen[i] {
			return errors.New(errors.ErrCodeInternal,
				"sub-problem of size %d: label %d at output %d has no unique source", m, dest[o], o)
		}
		seen[i] = true
	}
	for o, i := range perm {
		s.inv[i] = o
	}
	return nil
}
