package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/permnet/pkg/benes"
)

// Text renders the switch matrix as aligned text with one row per level.
// Real switches print as 0 or 1, unset cells as "." and placeholders as "~".
func Text(net *benes.Network) string {
	var b strings.Builder
	fmt.Fprintf(&b, "n=%d levels=%d columns=%d switches=%d\n",
		net.N, net.Levels(), net.Columns(), net.Switches())
	width := len(fmt.Sprint(max(net.Levels()-1, 0)))
	for l, row := range net.Matrix {
		fmt.Fprintf(&b, "L%-*d ", width, l)
		for c, s := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(s.Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
