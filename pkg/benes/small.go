package benes

import "github.com/matzehuels/permnet/pkg/errors"

// pairOutcome is the routing of a two-element sub-problem.
type pairOutcome uint8

const (
	pairStraight pairOutcome = iota // dest = [a b]
	pairCross                       // dest = [b a]
)

func classifyPair(src, dest []int) (pairOutcome, error) {
	switch {
	case src[0] == dest[0] && src[1] == dest[1]:
		return pairStraight, nil
	case src[0] == dest[1] && src[1] == dest[0]:
		return pairCross, nil
	}
	return 0, errors.New(errors.ErrCodeInternal, "pair %v cannot be routed to %v", src, dest)
}

// tripleOutcome is the routing of a three-element sub-problem [a b c].
//
// A three-element network has one switch per level: the first and last act on
// wires (0, 1), the middle one on wires (1, 2).
type tripleOutcome uint8

const (
	tripleIdentity    tripleOutcome = iota // [a b c]
	tripleSwapTail                         // [a c b]
	tripleSwapHead                         // [b a c]
	tripleRotateRight                      // [c a b]
	tripleRotateLeft                       // [b c a]
	tripleReverse                          // [c b a]
)

// tripleSettings holds the first, middle and last switch per outcome.
var tripleSettings = [...][3]Switch{
	tripleIdentity:    {Straight, Straight, Straight},
	tripleSwapTail:    {Straight, Cross, Straight},
	tripleSwapHead:    {Straight, Straight, Cross},
	tripleRotateRight: {Straight, Cross, Cross},
	tripleRotateLeft:  {Cross, Cross, Straight},
	tripleReverse:     {Cross, Cross, Cross},
}

var tripleNames = [...]string{
	tripleIdentity:    "identity",
	tripleSwapTail:    "swap-tail",
	tripleSwapHead:    "swap-head",
	tripleRotateRight: "rotate-right",
	tripleRotateLeft:  "rotate-left",
	tripleReverse:     "reverse",
}

func (t tripleOutcome) String() string { return tripleNames[t] }

// classifyTriple keys on where src[0] lands, then on where src[1] lands.
func classifyTriple(src, dest []int) (tripleOutcome, error) {
	var t tripleOutcome
	switch src[0] {
	case dest[0]:
		t = tripleSwapTail
		if src[1] == dest[1] {
			t = tripleIdentity
		}
	case dest[1]:
		t = tripleRotateRight
		if src[1] == dest[0] {
			t = tripleSwapHead
		}
	case dest[2]:
		t = tripleReverse
		if src[1] == dest[0] {
			t = tripleRotateLeft
		}
	default:
		return 0, errors.New(errors.ErrCodeInternal, "triple %v cannot be routed to %v", src, dest)
	}
	return t, nil
}
