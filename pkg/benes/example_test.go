package benes_test

import (
	"fmt"

	"github.com/matzehuels/permnet/pkg/benes"
)

func ExampleSynthesize() {
	net, err := benes.Synthesize([]int{3, 2, 1, 0})
	if err != nil {
		panic(err)
	}
	fmt.Println("levels:", net.Levels(), "columns:", net.Columns())
	fmt.Println(net.Matrix)
	// Output:
	// levels: 3 columns: 2
	// 00
	// 11
	// 11
}

func ExampleSynthesize_odd() {
	// Odd sizes route the trailing element straight into the bottom half.
	// The two-element top half sits one level deeper, so the cells above and
	// below its switch are placeholders (~).
	net, _ := benes.Synthesize([]int{1, 2, 3, 4, 0})
	fmt.Println(net.Matrix)
	fmt.Println("placeholders:", net.Matrix.Count(benes.Placeholder))
	// Output:
	// 11
	// ~1
	// 01
	// ~0
	// 00
	// placeholders: 2
}

func ExampleApply() {
	net, _ := benes.Synthesize([]int{2, 0, 1})
	out, _ := benes.Apply(net, []string{"a", "b", "c"})
	fmt.Println(out)
	// Output:
	// [c a b]
}

func ExampleTrace() {
	net, _ := benes.Synthesize([]int{3, 2, 1, 0})
	states, _ := benes.Trace(net, []int{0, 1, 2, 3})
	for _, s := range states {
		fmt.Println(s)
	}
	// Output:
	// [0 1 2 3]
	// [0 1 2 3]
	// [2 3 0 1]
	// [3 2 1 0]
}

func ExampleTopology() {
	for _, level := range benes.Topology(4) {
		fmt.Println(level)
	}
	// Output:
	// [{0 0 0 1} {0 1 2 3}]
	// [{1 0 0 2} {1 1 1 3}]
	// [{2 0 0 1} {2 1 2 3}]
}

func ExampleDimensions() {
	for _, n := range []int{2, 3, 8, 9} {
		levels, columns := benes.Dimensions(n)
		fmt.Printf("n=%d: %d levels x %d columns\n", n, levels, columns)
	}
	// Output:
	// n=2: 1 levels x 1 columns
	// n=3: 3 levels x 1 columns
	// n=8: 5 levels x 4 columns
	// n=9: 7 levels x 4 columns
}
