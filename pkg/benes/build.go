package benes

import "github.com/matzehuels/permnet/pkg/errors"

// shuffle maps position k of the vector leaving a column of input switches to
// its position in the concatenation top ++ bottom. Even positions feed the
// top half, odd positions the bottom half. For power-of-two sizes this is the
// one-bit right rotation of k.
func shuffle(k, half int) int {
	return k>>1 + (k&1)*half
}

// build writes the switches of the sub-network routing src to dest.
// It owns levels [level, level+2*logN-1) and columns starting at column.
func (s *scratch) build(src, dest []int, logN, level, column int) error {
	switch m := len(src); {
	case m == 2:
		return s.buildPair(src, dest, logN, level, column)
	case m == 3:
		return s.buildTriple(src, dest, level, column)
	case m >= 4:
		return s.buildGeneral(src, dest, logN, level, column)
	default:
		return errors.New(errors.ErrCodeInternal, "sub-problem of size %d at level %d", m, level)
	}
}

func (s *scratch) buildPair(src, dest []int, logN, level, column int) error {
	out, err := classifyPair(src, dest)
	if err != nil {
		return err
	}
	v := fromBool(out == pairCross)
	switch logN {
	case 1:
		s.m[level][column] = v
	case 2:
		s.m[level][column] = Placeholder
		s.m[level+1][column] = v
		s.m[level+2][column] = Placeholder
	default:
		return errors.New(errors.ErrCodeInternal, "two-element sub-problem at depth %d", logN)
	}
	return nil
}

func (s *scratch) buildTriple(src, dest []int, level, column int) error {
	out, err := classifyTriple(src, dest)
	if err != nil {
		return err
	}
	sw := tripleSettings[out]

	w := [3]int{src[0], src[1], src[2]}
	if sw[0] == Cross {
		w[0], w[1] = w[1], w[0]
	}
	if sw[1] == Cross {
		w[1], w[2] = w[2], w[1]
	}
	if sw[2] == Cross {
		w[0], w[1] = w[1], w[0]
	}
	if w[0] != dest[0] || w[1] != dest[1] || w[2] != dest[2] {
		return errors.New(errors.ErrCodeInternal, "triple %v routed as %s does not reach %v", src, out, dest)
	}

	for i, v := range sw {
		s.m[level+i][column] = v
	}
	return nil
}

func (s *scratch) buildGeneral(src, dest []int, logN, level, column int) error {
	m := len(src)
	if err := s.mapPositions(src, dest); err != nil {
		return err
	}
	if err := s.colour(m); err != nil {
		return err
	}

	half := m / 2
	buf := s.buffer(logN, 2*m)
	topSrc, botSrc := buf[:half], buf[half:m]
	topDst, botDst := buf[m:m+half], buf[m+half:]
	place := func(top, bot []int, k, v int) {
		if x := shuffle(k, half); x < half {
			top[x] = v
		} else {
			bot[x-half] = v
		}
	}

	last := level + 2*logN - 2
	for i := 0; i+1 < m; i += 2 {
		in := s.path[i]
		s.m[level][column+i/2] = Switch(in)
		out := s.path[s.perm[i]]
		s.m[last][column+i/2] = Switch(out)
		for j := range 2 {
			place(topSrc, botSrc, (i|j)^int(in), src[i|j])
			place(topDst, botDst, (i|j)^int(out), dest[i|j])
		}
	}
	if m&1 == 1 {
		botSrc[half] = src[m-1]
		botDst[half] = dest[m-1]
	}

	// perm, inv and path are reused by the children from here on.
	if err := s.build(topSrc, topDst, logN-1, level+1, column); err != nil {
		return err
	}
	return s.build(botSrc, botDst, logN-1, level+1, column+m/4)
}
