// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package wide

import (
	"context"
	"fmt"

	"github.com/satforge/minunsat/comb"
	"github.com/satforge/minunsat/engine"
	"github.com/satforge/minunsat/kernel"
)

// MaxClauseCount is the largest c for which the packed 5-bit polarity
// fields cannot overflow into a neighboring variable's field, same
// constraint as candidate.MaxClauseCount.
const MaxClauseCount = 31

// Counter is the flat chunk dispatcher (spec.md §4.5's "V2",
// generalized per §4.9) for a widened catalog. There is no
// prefix-pruned hybrid variant for v > 6: the pruning oracle's
// necessary filter is defined over single-word falsification masks
// only, and at v > 6 sizes the dominant cost is the catalog itself, so
// the flat dispatcher's simplicity is preferred over porting the
// hybrid's prefix machinery to word arrays.
type Counter struct {
	cat   *Catalog
	table *comb.Table
	c     int
	exec  kernel.Executor
	mode  Mode
}

// Mode selects between the full MU test and the relaxed UNSAT-only
// test, mirroring engine/flat.Mode.
type Mode int

const (
	ModeMU Mode = iota
	ModeUnsat
)

// New builds a widened flat dispatcher for cat with c clauses per
// candidate, running the full MU test.
func New(cat *Catalog, c int, exec kernel.Executor) (*Counter, error) {
	return NewMode(cat, c, exec, ModeMU)
}

// NewMode builds a widened flat dispatcher like New, but lets the
// caller select ModeUnsat for the `unsat` verb's relaxed test.
func NewMode(cat *Catalog, c int, exec kernel.Executor, mode Mode) (*Counter, error) {
	if c < cat.K+1 || c > MaxClauseCount {
		return nil, fmt.Errorf("wide: c=%d out of range for v=%d k=%d", c, cat.V, cat.K)
	}
	return &Counter{
		cat:   cat,
		table: comb.NewTable(cat.T, c),
		c:     c,
		exec:  exec,
		mode:  mode,
	}, nil
}

// TotalCombinations is C(T,c).
func (ct *Counter) TotalCombinations() uint64 {
	return ct.table.Count(ct.cat.T, ct.c)
}

// TotalUnits is the number of chunks, ceil(C(T,c)/ChunkSize).
func (ct *Counter) TotalUnits() uint64 {
	total := ct.TotalCombinations()
	return (total + engine.ChunkSize - 1) / engine.ChunkSize
}

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

	var sum int64
	for i := uint64(0); i < n; i++ {
		var res Result
		if ct.mode == ModeUnsat {
			res = EvaluateUnsat(ct.cat, tuple)
		} else {
			res = EvaluateFull(ct.cat, tuple)
		}
		if res.MU {
			sum += res.Contribution
		}
		if i+1 < n {
			comb.Next(tuple, ct.c, ct.cat.T)
		}
	}
	return sum
}

// RunBatch dispatches [startUnit, startUnit+numUnits) chunks through
// the kernel executor.
func (ct *Counter) RunBatch(ctx context.Context, startUnit, numUnits uint64) (int64, error) {
	return ct.exec.Run(ctx, int(numUnits), func(u int) int64 {
		return ct.evalChunk(startUnit + uint64(u))
	})
}

// ManyVarsCounter wraps Counter with the v > 6 checkpointing policy of
// spec.md §9 point 3: a many-vars run may still persist checkpoints
// for observability, but it can never resume from one. Resumable
// always reports false so the orchestrator and checkpoint store know
// to restart from zero and log that decision explicitly rather than
// silently discard a stale checkpoint.
type ManyVarsCounter struct {
	*Counter
}

// NewManyVars wraps a widened flat dispatcher with the non-resumable
// checkpoint policy, running the full MU test.
func NewManyVars(cat *Catalog, c int, exec kernel.Executor) (*ManyVarsCounter, error) {
	return NewManyVarsMode(cat, c, exec, ModeMU)
}

// NewManyVarsMode wraps a widened flat dispatcher like NewManyVars, but
// lets the caller select ModeUnsat for the `unsat` verb at v > 6.
func NewManyVarsMode(cat *Catalog, c int, exec kernel.Executor, mode Mode) (*ManyVarsCounter, error) {
	ct, err := NewMode(cat, c, exec, mode)
	if err != nil {
		return nil, err
	}
	return &ManyVarsCounter{Counter: ct}, nil
}

// Resumable always reports false for the many-vars variant.
func (*ManyVarsCounter) Resumable() bool { return false }
