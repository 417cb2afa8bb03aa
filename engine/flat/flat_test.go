// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package flat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/kernel"
	"github.com/satforge/minunsat/prune"
)

// TestKnownScenarios checks the concrete minunsat scenarios of
// spec.md §8 that are small enough to flat-enumerate directly.
func TestKnownScenarios(t *testing.T) {
	cases := []struct {
		v, k, c int
		want    int64
	}{
		{2, 2, 4, 1},
		{3, 2, 5, 36},
		{4, 2, 6, 1008},
	}

	for _, tc := range cases {
		cat, err := catalog.Build(tc.v, tc.k)
		require.NoError(t, err)

		ct, err := New(cat, tc.c, kernel.NewCPUPool(), false)
		require.NoError(t, err)

		var sum int64
		total := ct.TotalUnits()
		for u := uint64(0); u < total; u++ {
			n, err := ct.RunBatch(context.Background(), u, 1)
			require.NoError(t, err)
			sum += n
		}
		require.Equal(t, tc.want, sum, "v=%d k=%d c=%d", tc.v, tc.k, tc.c)
	}
}

func TestRejectsBadClauseCount(t *testing.T) {
	cat, err := catalog.Build(3, 2)
	require.NoError(t, err)
	_, err = New(cat, 1, kernel.NewCPUPool(), false)
	require.Error(t, err)
}
