package benes

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/perm"
)

const (
	S = Straight
	X = Cross
	U = Unset
	P = Placeholder
)

func TestDimensions(t *testing.T) {
	tests := []struct {
		n, levels, columns int
	}{
		{1, 0, 0},
		{2, 1, 1},
		{3, 3, 1},
		{4, 3, 2},
		{5, 5, 2},
		{8, 5, 4},
		{9, 7, 4},
		{16, 7, 8},
		{17, 9, 8},
		{1000, 19, 500},
	}

	for _, tt := range tests {
		l, c := Dimensions(tt.n)
		if l != tt.levels || c != tt.columns {
			t.Errorf("Dimensions(%d) = (%d, %d), want (%d, %d)", tt.n, l, c, tt.levels, tt.columns)
		}
	}
}

func TestSynthesizeFixedCases(t *testing.T) {
	tests := []struct {
		name string
		dest []int
		want Matrix
	}{
		{"pair cross", []int{1, 0}, Matrix{{X}}},
		{"pair straight", []int{0, 1}, Matrix{{S}}},
		{"triple identity", []int{0, 1, 2}, Matrix{{S}, {S}, {S}}},
		{"triple cycle", []int{2, 0, 1}, Matrix{{S}, {X}, {X}}},
		{"reversal of four", []int{3, 2, 1, 0}, Matrix{{S, S}, {X, X}, {X, X}}},
		{"rotation of five", []int{1, 2, 3, 4, 0}, Matrix{
			{X, X},
			{P, X},
			{S, X},
			{P, S},
			{S, S},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := Synthesize(tt.dest)
			if err != nil {
				t.Fatalf("Synthesize(%v) error: %v", tt.dest, err)
			}
			if diff := cmp.Diff(tt.want, net.Matrix); diff != "" {
				t.Errorf("Synthesize(%v) matrix mismatch (-want +got):\n%s", tt.dest, diff)
			}
			if err := Verify(net, tt.dest); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestSynthesizeSingle(t *testing.T) {
	net, err := Synthesize([]int{0})
	if err != nil {
		t.Fatalf("Synthesize([0]) error: %v", err)
	}
	if net.Levels() != 0 || net.Columns() != 0 {
		t.Errorf("Synthesize([0]) shape = %dx%d, want 0x0", net.Levels(), net.Columns())
	}
	got, err := Apply(net, []string{"only"})
	if err != nil || !slices.Equal(got, []string{"only"}) {
		t.Errorf("Apply on single network = %v, %v", got, err)
	}
}

func TestSynthesizeExhaustive(t *testing.T) {
	maxN := 8
	if testing.Short() {
		maxN = 6
	}
	for n := 1; n <= maxN; n++ {
		levels, columns := Dimensions(n)
		for _, dest := range perm.Generate(n, 0) {
			net, err := Synthesize(dest)
			if err != nil {
				t.Fatalf("Synthesize(%v) error: %v", dest, err)
			}
			if net.Levels() != levels || (levels > 0 && net.Columns() != columns) {
				t.Fatalf("Synthesize(%v) shape = %dx%d, want %dx%d",
					dest, net.Levels(), net.Columns(), levels, columns)
			}
			if err := Verify(net, dest); err != nil {
				t.Fatalf("Synthesize(%v): %v", dest, err)
			}
		}
	}
}

func TestSynthesizeKeyed(t *testing.T) {
	sizes := []int{9, 10, 11, 12, 13, 15, 16, 17, 31, 32, 33, 63, 100, 255, 256, 257, 1000, 1023}
	for _, n := range sizes {
		for seed := range 4 {
			dest := perm.FromKey([]byte(fmt.Sprintf("benes-%d", seed)), n)
			net, err := Synthesize(dest)
			if err != nil {
				t.Fatalf("n=%d seed=%d: %v", n, seed, err)
			}
			if err := Verify(net, dest); err != nil {
				t.Fatalf("n=%d seed=%d: %v", n, seed, err)
			}
		}
	}
}

func TestSynthesizeIdentity(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7, 8, 64, 99} {
		net, err := Synthesize(perm.Seq(n))
		if err != nil {
			t.Fatalf("Synthesize(Seq(%d)) error: %v", n, err)
		}
		got, err := net.Permutation()
		if err != nil {
			t.Fatal(err)
		}
		if !perm.IsIdentity(got) {
			t.Errorf("identity network of %d realizes %v", n, got)
		}
	}
}

func TestSynthesizeInvalid(t *testing.T) {
	tests := []struct {
		name string
		dest []int
	}{
		{"empty", nil},
		{"duplicate", []int{0, 1, 1}},
		{"out of range", []int{0, 3, 1}},
		{"negative", []int{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := Synthesize(tt.dest)
			if err == nil {
				t.Fatalf("Synthesize(%v) = %v, want error", tt.dest, net)
			}
			if !errors.Is(err, errors.ErrCodeInvalidPermutation) {
				t.Errorf("Synthesize(%v) code = %v, want %v",
					tt.dest, errors.GetCode(err), errors.ErrCodeInvalidPermutation)
			}
		})
	}
}

func TestSentinelCells(t *testing.T) {
	// Size 6 splits into two triples occupying columns 0 and 1; column 2 of
	// the inner levels is never written.
	net, err := Synthesize([]int{5, 4, 3, 2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	for l := 1; l <= 3; l++ {
		if got := net.Matrix.At(l, 2); got != Unset {
			t.Errorf("n=6 cell (%d, 2) = %s, want unset", l, got)
		}
	}
	if got := net.Matrix.Count(Placeholder); got != 0 {
		t.Errorf("n=6 placeholders = %d, want 0", got)
	}

	// Size 5 puts a two-element network one level deeper than its natural
	// depth, reserving the cells above and below it.
	net, err = Synthesize([]int{4, 3, 2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if net.Matrix.At(1, 0) != Placeholder || net.Matrix.At(3, 0) != Placeholder {
		t.Errorf("n=5 matrix missing placeholders:\n%s", net.Matrix)
	}
	if !net.Matrix.At(2, 0).IsSwitch() {
		t.Errorf("n=5 cell (2, 0) = %s, want a switch", net.Matrix.At(2, 0))
	}
}

func TestTopologyMatchesBuilder(t *testing.T) {
	for n := 2; n <= 40; n++ {
		dest := perm.FromKey([]byte("topology"), n)
		net, err := Synthesize(dest)
		if err != nil {
			t.Fatal(err)
		}
		wired := NewMatrix(Dimensions(n))
		for l, gates := range Topology(n) {
			used := make(map[int]bool)
			for _, g := range gates {
				if g.Level != l {
					t.Fatalf("n=%d gate %+v listed under level %d", n, g, l)
				}
				if used[g.A] || used[g.B] || g.A == g.B {
					t.Fatalf("n=%d level %d reuses a slot in gate %+v", n, l, g)
				}
				used[g.A], used[g.B] = true, true
				wired[g.Level][g.Column] = Straight
			}
		}
		for l := range net.Matrix {
			for c, v := range net.Matrix[l] {
				if isWired := wired[l][c] == Straight; isWired != v.IsSwitch() {
					t.Fatalf("n=%d cell (%d, %d) = %s, wired=%v", n, l, c, v, isWired)
				}
			}
		}
	}
}

func TestShuffleIsRotation(t *testing.T) {
	rotate := func(k, bits int) int {
		return k>>1 | (k&1)<<(bits-1)
	}
	for bits := 1; bits <= 8; bits++ {
		m := 1 << bits
		for k := range m {
			if got, want := shuffle(k, m/2), rotate(k, bits); got != want {
				t.Fatalf("shuffle(%d, %d) = %d, rotation = %d", k, m/2, got, want)
			}
		}
	}
}

func TestShuffleInRange(t *testing.T) {
	for m := 4; m <= 33; m++ {
		half := m / 2
		seen := make(map[int]bool)
		for k := range 2 * half {
			x := shuffle(k, half)
			if x < 0 || x >= 2*half || seen[x] {
				t.Fatalf("shuffle(%d, %d) = %d out of range or repeated", k, half, x)
			}
			seen[x] = true
		}
	}
}

func TestClassifyTriple(t *testing.T) {
	src := []int{7, 3, 5}
	tests := []struct {
		dest []int
		want tripleOutcome
	}{
		{[]int{7, 3, 5}, tripleIdentity},
		{[]int{7, 5, 3}, tripleSwapTail},
		{[]int{3, 7, 5}, tripleSwapHead},
		{[]int{5, 7, 3}, tripleRotateRight},
		{[]int{3, 5, 7}, tripleRotateLeft},
		{[]int{5, 3, 7}, tripleReverse},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := classifyTriple(src, tt.dest)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("classifyTriple(%v, %v) = %s, want %s", src, tt.dest, got, tt.want)
			}
			s := newScratch(8)
			s.m = NewMatrix(3, 1)
			if err := s.buildTriple(src, tt.dest, 0, 0); err != nil {
				t.Errorf("buildTriple(%v, %v): %v", src, tt.dest, err)
			}
		})
	}

	if _, err := classifyTriple(src, []int{1, 2, 4}); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("classifyTriple with foreign labels: err = %v, want internal", err)
	}
}

func TestClassifyPair(t *testing.T) {
	if got, _ := classifyPair([]int{4, 9}, []int{4, 9}); got != pairStraight {
		t.Errorf("classifyPair straight = %v", got)
	}
	if got, _ := classifyPair([]int{4, 9}, []int{9, 4}); got != pairCross {
		t.Errorf("classifyPair cross = %v", got)
	}
	if _, err := classifyPair([]int{4, 9}, []int{4, 4}); err == nil {
		t.Error("classifyPair with mismatched labels should fail")
	}
}

func TestMapPositionsRejectsMismatch(t *testing.T) {
	s := newScratch(6)
	err := s.mapPositions([]int{0, 1, 2, 3}, []int{0, 1, 2, 5})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("mapPositions with foreign label: err = %v, want internal", err)
	}
}

func TestColourConstraints(t *testing.T) {
	for n := 4; n <= 7; n++ {
		for _, dest := range perm.Generate(n, 0) {
			s := newScratch(n)
			if err := s.mapPositions(perm.Seq(n), dest); err != nil {
				t.Fatal(err)
			}
			if err := s.colour(n); err != nil {
				t.Fatalf("colour(%v): %v", dest, err)
			}
		}
	}
}

func TestReentrant(t *testing.T) {
	const workers = 8
	dests := make([][]int, workers)
	want := make([]Matrix, workers)
	for i := range dests {
		dests[i] = perm.FromKey([]byte(fmt.Sprintf("reentrant-%d", i)), 37+i*13)
		net, err := Synthesize(dests[i])
		if err != nil {
			t.Fatal(err)
		}
		want[i] = net.Matrix
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers*10)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				net, err := Synthesize(dests[i])
				if err != nil {
					errs <- err
					return
				}
				if !cmp.Equal(want[i], net.Matrix) {
					errs <- fmt.Errorf("worker %d observed a different matrix", i)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestSynthesizeAll(t *testing.T) {
	var dests [][]int
	for n := 1; n <= 20; n++ {
		dests = append(dests, perm.Reverse(n))
	}
	nets, err := SynthesizeAll(context.Background(), dests, 4)
	if err != nil {
		t.Fatalf("SynthesizeAll error: %v", err)
	}
	if len(nets) != len(dests) {
		t.Fatalf("SynthesizeAll returned %d networks, want %d", len(nets), len(dests))
	}
	for i, net := range nets {
		if net.N != len(dests[i]) {
			t.Errorf("network %d has size %d, want %d", i, net.N, len(dests[i]))
		}
		if err := Verify(net, dests[i]); err != nil {
			t.Error(err)
		}
	}
}

func TestSynthesizeAllInvalid(t *testing.T) {
	dests := [][]int{{0, 1}, {1, 1}, {2, 0, 1}}
	_, err := SynthesizeAll(context.Background(), dests, 0)
	if !errors.Is(err, errors.ErrCodeInvalidPermutation) {
		t.Errorf("SynthesizeAll with invalid entry: err = %v", err)
	}
}

func TestSynthesizeAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SynthesizeAll(ctx, [][]int{{0, 1}}, 1)
	if err == nil {
		t.Error("SynthesizeAll on canceled context should fail")
	}
}

func TestApplyAndTrace(t *testing.T) {
	dest := []int{3, 0, 4, 1, 2}
	net, err := Synthesize(dest)
	if err != nil {
		t.Fatal(err)
	}
	values := []string{"a", "b", "c", "d", "e"}
	got, err := Apply(net, values)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"d", "a", "e", "b", "c"}
	if diff := cmp.Diff(perm.Apply(dest, values), want); diff != "" {
		t.Fatalf("perm.Apply disagrees with expected routing:\n%s", diff)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}

	states, err := Trace(net, values)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != net.Levels()+1 {
		t.Fatalf("Trace returned %d states, want %d", len(states), net.Levels()+1)
	}
	if diff := cmp.Diff(values, states[0]); diff != "" {
		t.Errorf("Trace first state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, states[len(states)-1]); diff != "" {
		t.Errorf("Trace last state mismatch (-want +got):\n%s", diff)
	}

	if _, err := Apply(net, values[:3]); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Apply with short vector: err = %v", err)
	}
}

func TestNewNetwork(t *testing.T) {
	orig, err := Synthesize([]int{1, 2, 3, 4, 0})
	if err != nil {
		t.Fatal(err)
	}
	net, err := NewNetwork(5, orig.Matrix.Codes())
	if err != nil {
		t.Fatalf("NewNetwork from codes: %v", err)
	}
	if diff := cmp.Diff(orig.Matrix, net.Matrix); diff != "" {
		t.Errorf("NewNetwork mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name  string
		n     int
		codes [][]int8
	}{
		{"zero size", 0, nil},
		{"too few levels", 4, [][]int8{{0, 0}}},
		{"wrong columns", 4, [][]int8{{0}, {0, 0}, {0, 0}}},
		{"undefined code", 2, [][]int8{{7}}},
		{"sentinel on wired cell", 2, [][]int8{{-1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetwork(tt.n, tt.codes)
			if !errors.Is(err, errors.ErrCodeInvalidNetwork) {
				t.Errorf("NewNetwork(%d, %v) err = %v, want invalid network", tt.n, tt.codes, err)
			}
		})
	}
}

func TestScratchBufferReuse(t *testing.T) {
	s := newScratch(16)
	a := s.buffer(3, 16)
	b := s.buffer(3, 12)
	if &a[0] != &b[0] {
		t.Error("buffer at the same depth was reallocated")
	}
	if len(b) != 12 {
		t.Errorf("len = %d, want 12", len(b))
	}
	if c := s.buffer(2, 8); &c[0] == &a[0] {
		t.Error("buffers at different depths share storage")
	}
}

func TestSynthesizeAllocations(t *testing.T) {
	const n = 256
	dest := perm.FromKey([]byte("allocs"), n)
	allocs := testing.AllocsPerRun(10, func() {
		if _, err := Synthesize(dest); err != nil {
			t.Fatal(err)
		}
	})
	// One buffer per depth, not one per sub-problem.
	if limit := float64(2*LogCeil(n) + 16); allocs > limit {
		t.Errorf("Synthesize(n=%d) made %v allocations, want <= %v", n, allocs, limit)
	}
}

func BenchmarkSynthesize(b *testing.B) {
	for _, n := range []int{16, 256, 4096} {
		dest := perm.FromKey([]byte("bench"), n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for range b.N {
				if _, err := Synthesize(dest); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
