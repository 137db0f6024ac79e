// Package pkg provides the core libraries for permnet, a synthesizer for
// rearrangeable (Benes-style) permutation networks.
//
// # Overview
//
// Given a permutation dest over n wires, permnet builds a levelled matrix of
// two-input switches that carries input dest[i] to output i. The pkg
// directory is organized by concern:
//
//  1. [perm] - Permutation helpers (validation, inverse, keyed random)
//  2. [benes] - Switch matrix, topology, synthesis and routing
//  3. [io] - Permutation parsing and the JSON/BSON network document
//  4. [render] - Text, DOT, SVG and PNG output
//  5. [cache] - Memory, file, Redis and null caches
//  6. [store] - Named network records in memory or MongoDB
//  7. [pipeline] - Orchestration (parse → synthesize → render) with caching
//  8. [observability] - Hooks for metrics and tracing
//  9. [errors] - Coded errors shared across the stack
//
// # Data Flow
//
//	permutation (args, file, or keyed random)
//	         ↓
//	    [pipeline.Parse]
//	         ↓
//	    [benes.Synthesize] ←→ [cache]
//	         ↓
//	    [render] / [io.MarshalNetwork]
//
// # Quick Start
//
//	net, err := benes.Synthesize([]int{1, 2, 3, 4, 0})
//	if err != nil {
//	    return err
//	}
//	out, _ := benes.Apply(net, []string{"a", "b", "c", "d", "e"})
//	// out == [b c d e a]
//	fmt.Print(render.Text(net))
//
// [perm]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/perm
// [benes]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/benes
// [io]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/errors
// [pipeline.Parse]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/pipeline#Parse
// [benes.Synthesize]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/benes#Synthesize
// [io.MarshalNetwork]: https://pkg.go.dev/github.com/matzehuels/permnet/pkg/io#MarshalNetwork
package pkg
