// Package benes synthesizes Benes-style permutation networks.
//
// # Overview
//
// A permutation network is a layered circuit of 2-input/2-output switches.
// Each switch either passes its two wires straight through or crosses them.
// The wiring between switches is fixed by the network size alone; only the
// switch settings depend on the permutation being realized. This makes the
// structure useful wherever values must be routed through a circuit whose
// control flow must not reveal the permutation, such as secret-shared shuffles
// and permutation-based set protocols.
//
// # Basic Usage
//
// [Synthesize] takes a permutation dest of [0, n) and returns a [Network]:
//
//	net, err := benes.Synthesize([]int{2, 0, 1})
//	if err != nil {
//	    return err
//	}
//	out, _ := benes.Apply(net, []string{"a", "b", "c"}) // [c a b]
//
// Routing the identity vector reproduces dest: output slot i receives input
// dest[i]. [Verify] checks exactly that round trip.
//
// # Shape
//
// A network for n inputs has 2⌈log2 n⌉-1 levels of ⌊n/2⌋ switch columns
// (see [Dimensions]). The matrix is the only artifact; together with
// [Topology] it fully determines how any vector is routed. Cells that exist
// structurally but carry no switch hold one of two sentinels: [Unset] for
// cells no sub-network ever writes, and [Placeholder] for the levels reserved
// around a two-element sub-network that sits one level deeper than its
// natural depth.
//
// # Construction
//
// Construction is the classic recursive top/bottom split. For a sub-problem of
// size m ≥ 4 the engine maps labels to dense positions, two-colours the
// conflict graph of input pairs and output pairs with an iterative
// depth-first search, sets the outermost input and output switches from the
// colouring, and recurses into a top half of ⌊m/2⌋ and a bottom half of
// ⌈m/2⌉. Odd sizes pass the last element straight to the bottom half. Sizes 2
// and 3 are fixed lookup tables.
//
// # Concurrency
//
// All scratch state belongs to a single call. Independent calls to
// [Synthesize] may run concurrently; [SynthesizeAll] does so over a bounded
// worker group. A [Network] is immutable after construction and safe to share.
package benes
