//go:build !cgo

// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package kernel

// Reduce sums per-worker partial results with a plain Go loop when
// built without cgo (no MLX backend available).
func Reduce(partials []int64) int64 {
	var total int64
	for _, p := range partials {
		total += p
	}
	return total
}
