// Package io provides import and export of permutations and synthesized
// networks.
//
// # Network Format
//
// Networks are stored as JSON documents:
//
//	{
//	  "format": 1,
//	  "n": 4,
//	  "levels": 3,
//	  "columns": 2,
//	  "permutation": [3, 2, 1, 0],
//	  "matrix": [[0, 0], [1, 1], [1, 1]]
//	}
//
// Matrix cells use the 8-bit switch codes of the engine: 0 straight, 1 cross,
// -1 unset and -2 placeholder. The permutation is optional; when present,
// [ReadNetwork] checks that the matrix realizes it.
//
// Use [ImportNetwork] / [ExportNetwork] for files and [ReadNetwork] /
// [WriteNetwork] for any io.Reader / io.Writer.
//
// # Permutation Input
//
// [ReadPermutation] and [ParsePermutation] accept either a JSON array
// ("[2, 0, 1]") or a list of integers separated by commas or whitespace
// ("2,0,1" or "2 0 1"). The result is validated as a permutation of [0, n).
//
// # Errors
//
// Syntax problems are reported with errors.ErrCodeInvalidFormat, bad
// permutations with errors.ErrCodeInvalidPermutation and inconsistent
// networks with errors.ErrCodeInvalidNetwork.
package io
