// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package candidate

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/comb"
)

func arraysOf(cat *catalog.Catalog) Arrays {
	return Arrays{F: cat.F, Vars: cat.Vars, Pos: cat.Pos, Neg: cat.Neg}
}

// TestSingleMUFormula exercises the smallest 2-SAT MU formula: all four
// 2-clauses over 2 variables, which must be UNSAT, minimal, cover both
// variables, and (being already balanced) have orbit size 1.
func TestSingleMUFormula(t *testing.T) {
	cat, err := catalog.Build(2, 2)
	require.NoError(t, err)
	require.Equal(t, 4, cat.T)

	res := EvaluateFull(arraysOf(cat), []int{0, 1, 2, 3}, cat.AllVarsMask(), cat.AllAssignmentsMask(), 2)
	require.True(t, res.MU)
	require.Equal(t, int64(1), res.Contribution)
}

// TestRejectsSatisfiable drops one clause from the complete v=2 clause
// set, leaving one assignment unfalsified, and checks the coverage
// (UNSAT) filter rejects it.
func TestRejectsSatisfiable(t *testing.T) {
	cat, err := catalog.Build(2, 2)
	require.NoError(t, err)

	res := EvaluateFull(arraysOf(cat), []int{0, 1, 2}, cat.AllVarsMask(), cat.AllAssignmentsMask(), 2)
	require.False(t, res.MU)
}

// TestKnownCount3v2c5 brute-forces every 5-clause candidate over the
// v=3,k=2 catalog and checks the total against the known closed-form
// value from spec.md §6/§8 (36), and that every counted formula has an
// even unbalanced-variable count (parity, invariant 6).
func TestKnownCount3v2c5(t *testing.T) {
	cat, err := catalog.Build(3, 2)
	require.NoError(t, err)

	const c = 5
	table := comb.NewTable(cat.T, c)
	total := table.Count(cat.T, c)

	arrays := arraysOf(cat)
	allVars := cat.AllVarsMask()
	allAssign := cat.AllAssignmentsMask()

	var sum int64
	tuple := table.Unrank(0, cat.T, c)
	for i := uint64(0); i < total; i++ {
		res := EvaluateFull(arrays, tuple, allVars, allAssign, 3)
		if res.MU {
			require.Equal(t, 0, bits.TrailingZeros64(uint64(res.Contribution))%2, "unbalanced-variable count log2(orbit size) must be even")
			sum += res.Contribution
		}
		if i+1 < total {
			comb.Next(tuple, c, cat.T)
		}
	}

	require.Equal(t, int64(36), sum)
}

// TestEvaluateSuffixMatchesFull checks that splitting a candidate into
// a prefix folded ahead of time and a suffix tuple gives the same
// result as folding the whole tuple at once, for the same v=3,k=2
// catalog and a concrete MU-producing combination.
func TestEvaluateSuffixMatchesFull(t *testing.T) {
	cat, err := catalog.Build(3, 2)
	require.NoError(t, err)
	arrays := arraysOf(cat)
	allVars := cat.AllVarsMask()
	allAssign := cat.AllAssignmentsMask()

	const c = 5
	table := comb.NewTable(cat.T, c)
	total := table.Count(cat.T, c)
	tuple := table.Unrank(0, cat.T, c)

	found := false
	for i := uint64(0); i < total && !found; i++ {
		full := EvaluateFull(arrays, tuple, allVars, allAssign, 3)
		if full.MU {
			found = true

			prefix := append([]int(nil), tuple[:2]...)
			suffix := append([]int(nil), tuple[2:]...)

			var init State
			for _, idx := range prefix {
				init.Fold(arrays.F[idx], arrays.Vars[idx], arrays.Pos[idx], arrays.Neg[idx])
			}

			split := EvaluateSuffix(arrays, prefix, suffix, init, allVars, allAssign, 3)
			require.Equal(t, full, split)
		}
		if i+1 < total {
			comb.Next(tuple, c, cat.T)
		}
	}
	require.True(t, found, "expected at least one MU candidate in this enumeration")
}
