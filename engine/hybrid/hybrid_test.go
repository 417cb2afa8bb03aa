// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package hybrid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/engine/flat"
	"github.com/satforge/minunsat/kernel"
)

func runAll(t *testing.T, ct *Counter) int64 {
	t.Helper()
	var sum int64
	total := ct.TotalUnits()
	for u := uint64(0); u < total; u++ {
		n, err := ct.RunBatch(context.Background(), u, 1)
		require.NoError(t, err)
		sum += n
	}
	return sum
}

// TestCompleteClauseSetIsMU reproduces the spec.md §8 scenario
// "minunsat -v 3 -l 3 -c 8 => 1": the complete set of all eight
// 3-clauses over 3 variables is the unique MU formula at this size.
func TestCompleteClauseSetIsMU(t *testing.T) {
	cat, err := catalog.Build(3, 3)
	require.NoError(t, err)

	ct, err := New(cat, 8, DefaultPrefixDepth(8), kernel.NewCPUPool())
	require.NoError(t, err)

	require.Equal(t, int64(1), runAll(t, ct))
}

// TestAgreesWithFlat checks engine equivalence (spec.md §8 invariant 4)
// between the V2 flat dispatcher and the V3 prefix-pruned hybrid
// dispatcher on a small 2-SAT catalog.
func TestAgreesWithFlat(t *testing.T) {
	cat, err := catalog.Build(3, 2)
	require.NoError(t, err)

	const c = 5
	flatCt, err := flat.New(cat, c, kernel.NewCPUPool(), false)
	require.NoError(t, err)
	var flatSum int64
	total := flatCt.TotalUnits()
	for u := uint64(0); u < total; u++ {
		n, err := flatCt.RunBatch(context.Background(), u, 1)
		require.NoError(t, err)
		flatSum += n
	}

	hybridCt, err := New(cat, c, 2, kernel.NewCPUPool())
	require.NoError(t, err)
	hybridSum := runAll(t, hybridCt)

	require.Equal(t, flatSum, hybridSum)
	require.Equal(t, int64(36), flatSum)
}

func TestRejectsBadPrefixDepth(t *testing.T) {
	cat, err := catalog.Build(3, 2)
	require.NoError(t, err)
	_, err = New(cat, 5, 4, kernel.NewCPUPool())
	require.Error(t, err)
}
