// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/checkpoint"
	"github.com/satforge/minunsat/engine/flat"
	"github.com/satforge/minunsat/kernel"
)

// TestConcreteScenarios reproduces the `minunsat` end-to-end scenarios
// of spec.md §8 except v=5 l=3 c=11; the `unsat` scenario is covered by
// the bruteforce package's tests.
func TestConcreteScenarios(t *testing.T) {
	cases := []struct {
		v, k, c int
		want    int64
	}{
		{2, 2, 4, 1},
		{3, 2, 5, 36},
		{4, 2, 6, 1008},
		{6, 2, 8, 725760},
		{3, 3, 8, 1},
		{4, 3, 10, 29792},
	}

	for _, tc := range cases {
		res, err := Count(context.Background(), Request{V: tc.v, K: tc.k, C: tc.c, Verb: VerbMinunsat})
		require.NoError(t, err, "v=%d k=%d c=%d", tc.v, tc.k, tc.c)
		require.Equal(t, tc.want, res.Count, "v=%d k=%d c=%d", tc.v, tc.k, tc.c)
		require.False(t, res.Cancelled)
		require.Equal(t, res.Total, res.Processed)
	}
}

// TestEngineSelection checks that the (v,3,8) special case dispatches
// through the clique enumerator, and that 2-SAT always uses V2 since
// V3 is 3-SAT-only.
func TestEngineSelection(t *testing.T) {
	res, err := Count(context.Background(), Request{V: 4, K: 3, C: 8, Verb: VerbMinunsat})
	require.NoError(t, err)
	require.Equal(t, "clique", res.Engine)

	res, err = Count(context.Background(), Request{V: 4, K: 2, C: 6, Verb: VerbMinunsat})
	require.NoError(t, err)
	require.Equal(t, "flat-v2", res.Engine)

	res, err = Count(context.Background(), Request{V: 4, K: 3, C: 10, Verb: VerbMinunsat})
	require.NoError(t, err)
	require.Equal(t, "hybrid-v3", res.Engine)

	res, err = Count(context.Background(), Request{V: 4, K: 3, C: 10, Verb: VerbMinunsat, ForceCPU: true})
	require.NoError(t, err)
	require.Equal(t, "flat-v2", res.Engine, "--cpu forces V2 over V3")
}

// TestForceCPUAgreesWithDefault is spec.md §8 invariant 4 (engine
// equivalence): V2 and V3 must produce the same count.
func TestForceCPUAgreesWithDefault(t *testing.T) {
	v3, err := Count(context.Background(), Request{V: 4, K: 3, C: 10, Verb: VerbMinunsat})
	require.NoError(t, err)
	v2, err := Count(context.Background(), Request{V: 4, K: 3, C: 10, Verb: VerbMinunsat, ForceCPU: true})
	require.NoError(t, err)
	require.Equal(t, v2.Count, v3.Count)
}

// TestUnsatAtLeastMU is spec.md §8 invariant 7: MU(v,k,c) <= UNSAT(v,k,c).
func TestUnsatAtLeastMU(t *testing.T) {
	mu, err := Count(context.Background(), Request{V: 4, K: 2, C: 6, Verb: VerbMinunsat})
	require.NoError(t, err)
	unsat, err := Count(context.Background(), Request{V: 4, K: 2, C: 6, Verb: VerbUnsat})
	require.NoError(t, err)
	require.LessOrEqual(t, mu.Count, unsat.Count)
}

// TestCheckpointIdempotence is spec.md §8 invariant 8: resuming from a
// checkpoint mid-run yields the same final count as an uninterrupted
// run.
func TestCheckpointIdempotence(t *testing.T) {
	store, err := checkpoint.NewStore(t.TempDir())
	require.NoError(t, err)

	uninterrupted, err := Count(context.Background(), Request{V: 4, K: 2, C: 6, Verb: VerbMinunsat})
	require.NoError(t, err)

	// Seed a checkpoint partway through as if a prior run had been
	// cancelled after processing the flat dispatcher's first chunk;
	// compute that chunk's real contribution directly so the seeded
	// partial count is genuine, not a fabricated placeholder.
	cat, err := catalog.Build(4, 2)
	require.NoError(t, err)
	ct, err := flat.New(cat, 6, kernel.NewCPUPool(), false)
	require.NoError(t, err)
	firstChunk, err := ct.RunBatch(context.Background(), 0, 1)
	require.NoError(t, err)

	require.NoError(t, store.Save(checkpoint.Record{
		V: 4, K: 2, C: 6,
		ProcessedUnits: 1,
		PartialCount:   firstChunk,
		ElapsedMs:      10,
	}))

	resumed, err := Count(context.Background(), Request{V: 4, K: 2, C: 6, Verb: VerbMinunsat, Checkpoint: store})
	require.NoError(t, err)
	require.Equal(t, uninterrupted.Count, resumed.Count)
	require.False(t, resumed.Cancelled)

	// A successful run deletes its checkpoint.
	_, ok, err := store.Load(4, 2, 6, resumed.Total)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestCancellationReturnsPartial checks that an already-cancelled
// context returns a successful, cancelled result rather than an error
// (spec.md §7: cancellation is a successful early return), and that
// the "drain and include" discipline of spec.md §9 point 4 still folds
// in whatever batch was in flight when cancellation was observed: at
// this (v,k,c) the whole run is one batch, so the count is exact even
// though Cancelled is true.
func TestCancellationReturnsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Count(ctx, Request{V: 4, K: 2, C: 6, Verb: VerbMinunsat})
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.LessOrEqual(t, res.Processed, res.Total)
	require.Equal(t, int64(1008), res.Count)
}

// TestRejectsBadParams confirms ConfigError propagation (spec.md §7).
func TestRejectsBadParams(t *testing.T) {
	_, err := Count(context.Background(), Request{V: 2, K: 2, C: 5, Verb: VerbMinunsat})
	require.Error(t, err)

	_, err = Count(context.Background(), Request{V: 4, K: 2, C: 6, Verb: VerbMinunsat, PrefixDepth: 5})
	require.Error(t, err)
}
