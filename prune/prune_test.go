// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package prune

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/minunsat/catalog"
)

func TestBuildNeverFalselyRejects(t *testing.T) {
	cat, err := catalog.Build(4, 3)
	require.NoError(t, err)

	dst := make([]byte, cat.T)
	report := Build(cat.F, 1<<uint(cat.V), dst)
	require.LessOrEqual(t, report.NumGroups, MaxGroups)
	require.GreaterOrEqual(t, report.SkipRateEstim, 0.0)
	require.LessOrEqual(t, report.SkipRateEstim, 1.0)

	// Soundness: a clause set covering every assignment (UNSAT) must
	// combine to FullCoverage; this is the invariant the evaluator
	// relies on to never reject a true MU formula.
	allAssignments := cat.AllAssignmentsMask()
	// Build a small UNSAT-covering tuple greedily: OR clauses until
	// coverage is complete, then check the oracle doesn't reject it.
	var covered uint64
	var tuple []int
	for c := 0; c < cat.T && covered != allAssignments; c++ {
		if cat.F[c]&^covered != 0 {
			tuple = append(tuple, c)
			covered |= cat.F[c]
		}
	}
	require.Equal(t, allAssignments, covered)
	require.Equal(t, FullCoverage, CombinedCoverage(dst, tuple))
}

func TestEnabled(t *testing.T) {
	require.True(t, Enabled(3))
	require.False(t, Enabled(2))
}
