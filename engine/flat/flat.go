// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package flat implements the flat chunk dispatcher (spec.md §4.5,
// "V2"): C(T,c) partitioned into fixed-size chunks, each unranked once
// and advanced with comb.Next.
package flat

import (
	"context"
	"fmt"

	"github.com/satforge/minunsat/candidate"
	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/comb"
	"github.com/satforge/minunsat/engine"
	"github.com/satforge/minunsat/kernel"
	"github.com/satforge/minunsat/prune"
)

// Mode selects which candidate test evalChunk applies: the full MU
// test (UNSAT + minimality + all-variables) or the relaxed UNSAT-only
// test the `unsat` verb uses (spec.md §6).
type Mode int

const (
	// ModeMU runs candidate.EvaluateFull: UNSAT, minimality, and
	// all-variables.
	ModeMU Mode = iota
	// ModeUnsat runs candidate.EvaluateUnsat: UNSAT only.
	ModeUnsat
)

// Counter is the V2 dispatcher for a fixed (v, k, c) over a
// single-word catalog.
type Counter struct {
	cat    *catalog.Catalog
	arrays candidate.Arrays
	table  *comb.Table
	c      int
	exec   kernel.Executor
	prune  bool // apply the group-coverage filter before full evaluation
	mode   Mode
}

// New builds a V2 dispatcher for cat with c clauses per candidate,
// running the full MU test. usePrune enables the 3-SAT pruning oracle
// filter (cat.G must already be populated by prune.Build when usePrune
// is true).
func New(cat *catalog.Catalog, c int, exec kernel.Executor, usePrune bool) (*Counter, error) {
	return NewMode(cat, c, exec, usePrune, ModeMU)
}

// NewMode builds a V2 dispatcher like New, but lets the caller select
// ModeUnsat for the `unsat` verb's relaxed test. The group-coverage
// prune filter remains valid in both modes: full assignment coverage
// is a necessary condition for UNSAT whether or not minimality and
// all-variables are also required.
func NewMode(cat *catalog.Catalog, c int, exec kernel.Executor, usePrune bool, mode Mode) (*Counter, error) {
	if c < cat.K+1 || c > candidate.MaxClauseCount {
		return nil, fmt.Errorf("flat: c=%d out of range for v=%d k=%d", c, cat.V, cat.K)
	}
	return &Counter{
		cat:    cat,
		arrays: candidate.Arrays{F: cat.F, Vars: cat.Vars, Pos: cat.Pos, Neg: cat.Neg},
		table:  comb.NewTable(cat.T, c),
		c:      c,
		exec:   exec,
		prune:  usePrune,
		mode:   mode,
	}, nil
}

// TotalCombinations is C(T,c), the number of distinct candidates.
func (ct *Counter) TotalCombinations() uint64 {
	return ct.table.Count(ct.cat.T, ct.c)
}

// TotalUnits is the number of chunks, ceil(C(T,c)/ChunkSize).
func (ct *Counter) TotalUnits() uint64 {
	total := ct.TotalCombinations()
	return (total + engine.ChunkSize - 1) / engine.ChunkSize
}

// evalChunk evaluates every candidate in chunk chunkID and returns the
// sum of their contributions.
func (ct *Counter) evalChunk(chunkID uint64) int64 {
	total := ct.TotalCombinations()
	start := chunkID * engine.ChunkSize
	if start >= total {
		return 0
	}

	n := uint64(engine.ChunkSize)
	if remaining := total - start; remaining < n {
		n = remaining
	}

	tuple := ct.table.Unrank(start, ct.cat.T, ct.c)
	allVars := ct.cat.AllVarsMask()
	allAssign := ct.cat.AllAssignmentsMask()

	var sum int64
	for i := uint64(0); i < n; i++ {
		if !ct.prune || prune.CombinedCoverage(ct.cat.G, tuple) == prune.FullCoverage {
			var res candidate.Result
			if ct.mode == ModeUnsat {
				res = candidate.EvaluateUnsat(ct.arrays, tuple, allAssign, ct.cat.V)
			} else {
				res = candidate.EvaluateFull(ct.arrays, tuple, allVars, allAssign, ct.cat.V)
			}
			if res.MU {
				sum += res.Contribution
			}
		}
		if i+1 < n {
			comb.Next(tuple, ct.c, ct.cat.T)
		}
	}
	return sum
}

// RunBatch dispatches [startUnit, startUnit+numUnits) chunks through
// the kernel executor and returns their combined contribution.
func (ct *Counter) RunBatch(ctx context.Context, startUnit, numUnits uint64) (int64, error) {
	return ct.exec.Run(ctx, int(numUnits), func(u int) int64 {
		return ct.evalChunk(startUnit + uint64(u))
	})
}
