// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildConfigErrors(t *testing.T) {
	_, err := Build(3, 4)
	require.Error(t, err)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)

	_, err = Build(1, 2)
	require.Error(t, err)

	_, err = Build(7, 2)
	require.Error(t, err)
}

func TestCatalogInvariants(t *testing.T) {
	for _, tc := range []struct{ v, k int }{
		{2, 2}, {3, 2}, {4, 2}, {6, 2},
		{3, 3}, {4, 3}, {5, 3}, {6, 3},
	} {
		cat, err := Build(tc.v, tc.k)
		require.NoError(t, err)

		expectFalsified := 1 << uint(tc.v-tc.k)
		for c := 0; c < cat.T; c++ {
			require.Equal(t, expectFalsified, bits.OnesCount64(cat.F[c]), "v=%d k=%d clause=%d popcount(F)", tc.v, tc.k, c)
			require.Equal(t, tc.k, bits.OnesCount32(cat.Vars[c]), "v=%d k=%d clause=%d popcount(V)", tc.v, tc.k, c)

			for i := 0; i < tc.v; i++ {
				used := cat.Vars[c]&(1<<uint(i)) != 0
				p := (cat.Pos[c] >> uint(5*i)) & 0x1F
				n := (cat.Neg[c] >> uint(5*i)) & 0x1F
				sum := p + n
				if used {
					require.Equal(t, uint64(1), sum, "v=%d k=%d clause=%d var=%d", tc.v, tc.k, c, i)
				} else {
					require.Equal(t, uint64(0), sum, "v=%d k=%d clause=%d var=%d", tc.v, tc.k, c, i)
				}
			}
		}

		expectedT := int(comb(tc.v, tc.k)) << uint(tc.k)
		require.Equal(t, expectedT, cat.T)
	}
}

func comb(n, r int) int64 {
	res := int64(1)
	for i := 0; i < r; i++ {
		res = res * int64(n-i) / int64(i+1)
	}
	return res
}

func TestAllMasks(t *testing.T) {
	cat, err := Build(4, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(0xFFFF), cat.AllAssignmentsMask())
	require.Equal(t, uint32(0x0F), cat.AllVarsMask())
}
