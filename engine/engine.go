// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package engine holds the types shared by every dispatcher
// (engine/flat, engine/hybrid, and the wide package's multi-word
// variants) and by the orchestrator that selects between them.
package engine

import "context"

// ChunkSize is S, the number of candidates a single chunk advances
// through via comb.Next before the dispatcher moves to the next chunk
// (spec.md §4.5).
const ChunkSize = 1024

// MaxBatchChunks is B, the most chunks the orchestrator dispatches in
// one parallel region before returning control for cancellation
// polling, progress reporting, and checkpointing (spec.md §4.5, §4.7).
const MaxBatchChunks = 500_000

// Request names one enumeration: v variables, k literals per clause,
// c clauses.
type Request struct {
	V, K, C int
}

// Result is what a dispatcher (or the orchestrator wrapping one)
// returns after a run, whether it completed or was cancelled.
type Result struct {
	Count     int64
	Processed uint64
	Total     uint64
	Cancelled bool
}

// Progress is a point-in-time snapshot emitted during a long-running
// count for the CLI / logging ambient stack (spec.md §4.7 step 3).
type Progress struct {
	Processed uint64
	Total     uint64
	Count     int64
}

// Dispatcher is the contract every engine variant (flat V2, hybrid V3,
// and the wide package's widened counterparts) implements. The
// orchestrator drives any Dispatcher the same way: ask for the total
// unit count, then run batches of up to MaxBatchChunks units at a
// time, checking for cancellation and emitting progress/checkpoints
// between batches (spec.md §4.7).
//
// A "unit" is a chunk for the flat dispatcher and a flattened
// (prefix, suffix-chunk) pair for the hybrid dispatcher; both are
// S=ChunkSize candidates wide except possibly the last chunk of the
// flat enumeration or of each surviving prefix's suffix window.
type Dispatcher interface {
	TotalUnits() uint64
	RunBatch(ctx context.Context, startUnit, numUnits uint64) (int64, error)
}
