//go:build cgo

// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package kernel

import "github.com/luxfi/mlx"

// Reduce sums per-worker partial results. When built with cgo this
// uses an MLX pairwise tree reduction (the same batch-sum pattern the
// teacher's GPU engine uses for block-level reduction), landing on the
// same value a plain Go loop would produce — §5 only requires that
// every unit's contribution is added exactly once, in any order.
func Reduce(partials []int64) int64 {
	n := len(partials)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return partials[0]
	}

	size := 1
	for size < n {
		size *= 2
	}
	buf := make([]int64, size) // zero-padded; padding contributes 0 to every partial sum
	copy(buf, partials)

	arr := mlx.ArrayFromSlice(buf, []int{size}, mlx.Int64)
	mlx.Eval(arr)

	for size > 1 {
		half := size / 2
		lo := mlx.Slice(arr, []int{0}, []int{half}, []int{1})
		hi := mlx.Slice(arr, []int{half}, []int{size}, []int{1})
		arr = mlx.Add(lo, hi)
		mlx.Eval(arr)
		size = half
	}

	out := mlx.AsSlice[int64](arr)
	return out[0]
}
