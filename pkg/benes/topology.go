package benes

import (
	"slices"

	"github.com/matzehuels/permnet/pkg/perm"
)

// Gate names the two wire slots acted on by the switch at (Level, Column).
type Gate struct {
	Level  int `json:"level"`
	Column int `json:"column"`
	A      int `json:"a"`
	B      int `json:"b"`
}

// Topology returns the fixed wiring of a network over n inputs, one slice of
// gates per level ordered by column. Wire slots never move; a crossed gate
// exchanges the values held by slots A and B.
//
// Cells without a gate are the sentinel cells of the matrix.
func Topology(n int) [][]Gate {
	levels, _ := Dimensions(n)
	t := make([][]Gate, levels)
	if n > 1 {
		wire(t, perm.Seq(n), LogCeil(n), 0, 0)
	}
	for _, level := range t {
		slices.SortFunc(level, func(a, b Gate) int { return a.Column - b.Column })
	}
	return t
}

// wire mirrors build: slots w carry the sub-network's inputs and outputs.
func wire(t [][]Gate, w []int, logN, level, column int) {
	add := func(l, c, a, b int) {
		t[l] = append(t[l], Gate{Level: l, Column: c, A: a, B: b})
	}
	m := len(w)
	switch {
	case m == 2:
		l := level
		if logN == 2 {
			l++
		}
		add(l, column, w[0], w[1])
	case m == 3:
		add(level, column, w[0], w[1])
		add(level+1, column, w[1], w[2])
		add(level+2, column, w[0], w[1])
	case m >= 4:
		last := level + 2*logN - 2
		top := make([]int, 0, m/2)
		bot := make([]int, 0, m-m/2)
		for i := 0; i+1 < m; i += 2 {
			add(level, column+i/2, w[i], w[i+1])
			add(last, column+i/2, w[i], w[i+1])
			top = append(top, w[i])
			bot = append(bot, w[i+1])
		}
		if m&1 == 1 {
			bot = append(bot, w[m-1])
		}
		wire(t, top, logN-1, level+1, column)
		wire(t, bot, logN-1, level+1, column+m/4)
	}
}
