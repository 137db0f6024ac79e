// Package perm provides permutation utilities used to drive network synthesis.
//
// Permutations are plain []int slices of length n holding every value of
// 0..n-1 exactly once. Helpers here construct them (Seq, Reverse, Generate,
// FromKey), check them (Validate, IsIdentity) and combine them (Inverse,
// Compose).
package perm

import (
	"slices"

	"github.com/matzehuels/permnet/pkg/errors"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the identity permutation and the source order for synthesis.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n < 0 {
		n = 0
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Reverse returns the reversal permutation [n-1, ..., 1, 0].
func Reverse(n int) []int {
	result := Seq(n)
	slices.Reverse(result)
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Note that factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
// Generate handles edge cases gracefully:
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// For n >= 13, the number of permutations exceeds billions. Always use a limit
// when n is large, or your program will exhaust memory.
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	perm := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	if limit > 0 {
		capacity = min(capacity, limit)
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(perm))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			result = append(result, slices.Clone(perm))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// Validate reports whether p is a permutation of 0..len(p)-1.
// The empty slice is rejected. The returned error carries
// errors.ErrCodeInvalidPermutation and names the first offending position.
func Validate(p []int) error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidPermutation, "permutation is empty")
	}
	seen := make([]bool, len(p))
	for i, v := range p {
		if v < 0 || v >= len(p) {
			return errors.New(errors.ErrCodeInvalidPermutation,
				"value %d at position %d out of range [0, %d)", v, i, len(p))
		}
		if seen[v] {
			return errors.New(errors.ErrCodeInvalidPermutation,
				"value %d at position %d appears more than once", v, i)
		}
		seen[v] = true
	}
	return nil
}

// IsIdentity reports whether p[i] == i for every position.
func IsIdentity(p []int) bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}
	return true
}

// Inverse returns q with q[p[i]] = i. p must be a valid permutation.
func Inverse(p []int) []int {
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Compose returns c with c[i] = a[b[i]]: reading a through the positions
// named by b. Both arguments must be permutations of the same size.
func Compose(a, b []int) []int {
	c := make([]int, len(b))
	for i, v := range b {
		c[i] = a[v]
	}
	return c
}

// Apply returns values reordered by p: out[i] = values[p[i]].
func Apply[T any](p []int, values []T) []T {
	out := make([]T, len(p))
	for i, v := range p {
		out[i] = values[v]
	}
	return out
}
