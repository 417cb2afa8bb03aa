// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package wide

import (
	"context"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/minunsat/kernel"
)

func TestBuildConfigErrors(t *testing.T) {
	_, err := Build(6, 2)
	require.Error(t, err, "v<=6 belongs to the single-word catalog")

	_, err = Build(8, 4)
	require.Error(t, err, "k must be 2 or 3")
}

// TestCatalogInvariants checks the same structural invariants as the
// single-word catalog's test, across words: every clause falsifies
// exactly 2^(v-k) of the 2^v assignments, uses exactly k variables, and
// carries exactly one literal occurrence (positive xor negative) per
// used variable.
func TestCatalogInvariants(t *testing.T) {
	for _, tc := range []struct{ v, k int }{{7, 2}, {7, 3}, {8, 2}} {
		cat, err := Build(tc.v, tc.k)
		require.NoError(t, err)

		wantFalsified := 1 << uint(tc.v-tc.k)
		for i := 0; i < cat.T; i++ {
			var popcount int
			for _, w := range cat.F[i] {
				popcount += bits.OnesCount64(w)
			}
			require.Equal(t, wantFalsified, popcount, "clause %d falsification count", i)
			require.Equal(t, tc.k, bits.OnesCount64(cat.Vars[i]), "clause %d variable usage", i)

			for varIdx := 0; varIdx < tc.v; varIdx++ {
				word, shift := varIdx/varsPerWord, uint(5*(varIdx%varsPerWord))
				p := (cat.Pos[i][word] >> shift) & 0x1F
				n := (cat.Neg[i][word] >> shift) & 0x1F
				used := cat.Vars[i]&(1<<uint(varIdx)) != 0
				if used {
					require.Equal(t, uint64(1), p+n, "clause %d var %d exactly one polarity", i, varIdx)
				} else {
					require.Equal(t, uint64(0), p+n, "clause %d var %d unused", i, varIdx)
				}
			}
		}
	}
}

func TestAllAssignmentsAndVarsMasks(t *testing.T) {
	cat, err := Build(7, 2)
	require.NoError(t, err)

	require.Equal(t, uint64(0x7F), cat.AllVarsMask())

	words := cat.AllAssignmentsWords()
	var total int
	for _, w := range words {
		total += bits.OnesCount64(w)
	}
	require.Equal(t, 1<<7, total)
}

// TestFlatDispatcherPlumbing exercises the widened flat dispatcher end
// to end without attempting to brute-force an exact count at v=7 sizes:
// TotalUnits must be consistent with TotalCombinations, and RunBatch
// must run every chunk without error and produce a non-negative sum.
func TestFlatDispatcherPlumbing(t *testing.T) {
	cat, err := Build(7, 2)
	require.NoError(t, err)

	ct, err := New(cat, cat.K+1, kernel.NewCPUPool())
	require.NoError(t, err)

	total := ct.TotalCombinations()
	units := ct.TotalUnits()
	require.Equal(t, (total+1023)/1024, units)

	var sum int64
	for u := uint64(0); u < units; u++ {
		n, err := ct.RunBatch(context.Background(), u, 1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(0))
		sum += n
	}
	require.GreaterOrEqual(t, sum, int64(0))
}

func TestRejectsBadClauseCount(t *testing.T) {
	cat, err := Build(7, 2)
	require.NoError(t, err)
	_, err = New(cat, 1, kernel.NewCPUPool())
	require.Error(t, err)
}

func TestManyVarsCounterNotResumable(t *testing.T) {
	cat, err := Build(7, 2)
	require.NoError(t, err)
	mv, err := NewManyVars(cat, cat.K+1, kernel.NewCPUPool())
	require.NoError(t, err)
	require.False(t, mv.Resumable())
}
