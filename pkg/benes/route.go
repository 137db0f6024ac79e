package benes

import "github.com/matzehuels/permnet/pkg/errors"

const unassigned int8 = -1

type visit struct {
	idx   int
	label int8
}

// colour assigns halves to every input position of the current sub-problem.
// Label 0 sends a position to the top half, 1 to the bottom half.
//
// Input partners (i, i^1) must take different halves, and so must the two
// inputs feeding an output pair. The constraint graph is a union of even
// cycles and paths, so an iterative DFS two-colours it.
func (s *scratch) colour(m int) error {
	path := s.path[:m]
	for i := range path {
		path[i] = unassigned
	}

	if m&1 == 1 {
		// The trailing input and the input feeding the trailing output both
		// bypass the outer switches into the bottom half. Their chain is
		// coloured first so the generic sweep cannot contradict it.
		last := m - 1
		path[last] = 1
		path[s.perm[last]] = 1
		if s.perm[last] != last {
			s.walk(s.perm[s.inv[last]^1], 0, m)
		}
	}
	for i := range m {
		if path[i] == unassigned {
			s.walk(i, 0, m)
		}
	}
	return s.checkColouring(m)
}

func (s *scratch) walk(start int, label int8, m int) {
	path := s.path
	stack := append(s.stack[:0], visit{start, label})
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if path[v.idx] != unassigned {
			continue
		}
		path[v.idx] = v.label

		if p := v.idx ^ 1; p < m && path[p] == unassigned {
			stack = append(stack, visit{p, v.label ^ 1})
		}
		if o := s.inv[v.idx] ^ 1; o < m {
			if next := s.perm[o]; path[next] == unassigned {
				stack = append(stack, visit{next, v.label ^ 1})
			}
		}
	}
	s.stack = stack
}

func (s *scratch) checkColouring(m int) error {
	path := s.path[:m]
	for i, l := range path {
		if l == unassigned {
			return errors.New(errors.ErrCodeInternal, "position %d of %d left uncoloured", i, m)
		}
	}
	for i := 0; i+1 < m; i += 2 {
		if path[i] == path[i+1] {
			return errors.New(errors.ErrCodeInternal, "input pair (%d, %d) sent to the same half", i, i+1)
		}
		if path[s.perm[i]] == path[s.perm[i+1]] {
			return errors.New(errors.ErrCodeInternal, "output pair (%d, %d) fed from the same half", i, i+1)
		}
	}
	if m&1 == 1 && (path[m-1] != 1 || path[s.perm[m-1]] != 1) {
		return errors.New(errors.ErrCodeInternal, "trailing element of odd sub-problem not routed to the bottom half")
	}
	return nil
}
