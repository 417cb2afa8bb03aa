// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package kernel is the abstract parallel work-unit executor of
// spec.md §6: the contract is "run N independent units, combine their
// int64 contributions by addition", without committing to whether the
// units run on CPU goroutines, SIMD lanes, or a GPU. The dispatchers in
// engine/flat, engine/hybrid and wide are the only callers; they never
// know which backend executed a batch.
package kernel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Executor runs a batch of work units and returns the sum of their
// evaluations. eval must be a pure function of its index (spec.md §5:
// "workers never allocate, never perform I/O, never synchronize with
// each other beyond the terminal reduction").
type Executor interface {
	Run(ctx context.Context, numUnits int, eval func(unit int) int64) (int64, error)
}

// CPUPool is the always-available backend: numUnits work units spread
// across a bounded pool of goroutines, each producing a per-worker
// partial sum reduced on the host once every goroutine returns. This
// is the block-level reduction of spec.md §5 expressed with a
// semaphore-bounded errgroup rather than hand-rolled channels.
type CPUPool struct {
	// MaxWorkers caps in-flight goroutines; zero means GOMAXPROCS.
	MaxWorkers int
}

// NewCPUPool returns a CPUPool sized to GOMAXPROCS.
func NewCPUPool() *CPUPool {
	return &CPUPool{MaxWorkers: runtime.GOMAXPROCS(0)}
}

// Run partitions [0,numUnits) across the pool. Per spec.md §5, units
// are unordered and independent; ctx is consulted only when acquiring
// the semaphore slot for each worker, and a worker's own loop never
// checks it, so a started worker always finishes all of its units —
// the dispatcher is responsible for only ever calling Run with units it
// intends to run to completion.
func (p *CPUPool) Run(ctx context.Context, numUnits int, eval func(unit int) int64) (int64, error) {
	if numUnits == 0 {
		return 0, nil
	}

	workers := p.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numUnits {
		workers = numUnits
	}

	partials := make([]int64, workers)
	sem := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)

	unitsPerWorker := (numUnits + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		start := w * unitsPerWorker
		end := start + unitsPerWorker
		if end > numUnits {
			end = numUnits
		}
		if start >= end {
			continue
		}

		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			var sum int64
			for u := start; u < end; u++ {
				sum += eval(u)
			}
			partials[w] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return Reduce(partials), nil
}
