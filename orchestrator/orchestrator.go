// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package orchestrator implements C7 (spec.md §4.7): it selects the
// engine variant for a given (v, k, c), owns cancellation, progress
// reporting, and checkpoint lifecycle, and exposes that as a single
// capability, Count(ctx, Request) (Result, error) — cancellation is
// "just" ctx cancellation, collapsing the source material's separate
// cancellable/non-cancellable entry points into one method.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/checkpoint"
	"github.com/satforge/minunsat/clique"
	"github.com/satforge/minunsat/config"
	"github.com/satforge/minunsat/engine"
	"github.com/satforge/minunsat/engine/flat"
	"github.com/satforge/minunsat/engine/hybrid"
	"github.com/satforge/minunsat/kernel"
	"github.com/satforge/minunsat/msatlog"
	"github.com/satforge/minunsat/progress"
	"github.com/satforge/minunsat/prune"
	"github.com/satforge/minunsat/wide"
)

// Verb distinguishes the `minunsat` verb's full MU test from the
// `unsat` verb's relaxed UNSAT-only test (spec.md §6); both share the
// catalog and dispatchers.
type Verb int

const (
	// VerbMinunsat counts minimally unsatisfiable formulas.
	VerbMinunsat Verb = iota
	// VerbUnsat counts all UNSAT formulas, dropping minimality and
	// all-variables.
	VerbUnsat
)

// progressInterval and checkpointInterval are the "≥5s" / "≥30s"
// cadences of spec.md §4.7 step 3.
const (
	progressInterval   = 5 * time.Second
	checkpointInterval = 30 * time.Second
)

// Request names one enumeration run plus the optional ambient
// collaborators (checkpoint store, progress sink, logger) the
// orchestrator drives it with.
type Request struct {
	V, K, C int
	Verb    Verb

	ForceCPU    bool // force the flat/many-vars engine instead of V3; the (k=3, c=8) clique special case still applies
	PrefixDepth int  // 0 lets the orchestrator pick hybrid.DefaultPrefixDepth

	Checkpoint *checkpoint.Store    // nil disables checkpointing entirely
	OnProgress func(progress.Snapshot)
	Logger     *zerolog.Logger // nil uses msatlog.Default()
}

// Result is what Count returns after a run, whether it completed or
// was cancelled.
type Result struct {
	Count     int64
	Processed uint64
	Total     uint64
	Elapsed   time.Duration
	Cancelled bool
	Engine    string // "clique", "hybrid-v3", "flat-v2", or "many-vars"
}

func (r Request) logger() zerolog.Logger {
	if r.Logger != nil {
		return *r.Logger
	}
	return msatlog.Default()
}

// Count runs the selected engine for req to completion or cancellation
// (spec.md §4.7). Cancellation is observed only between batches: the
// "drain and include" discipline of spec.md §9 point 4 means a batch
// already dispatched to RunBatch always finishes and its contribution
// is added before ctx.Err() is consulted, so Result.Processed and
// Result.Count always remain mutually consistent.
func Count(ctx context.Context, req Request) (Result, error) {
	log := req.logger()

	params := config.Params{V: req.V, K: req.K, C: req.C, ForceCPU: req.ForceCPU, PrefixDepth: req.PrefixDepth}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if req.PrefixDepth != 0 && req.PrefixDepth != 2 && req.PrefixDepth != 3 {
		return Result{}, &config.ConfigError{Kind: "p", Message: fmt.Sprintf("prefix depth must be 2 or 3, got %d", req.PrefixDepth)}
	}

	// The dedicated exact-cover clique enumerator short-circuits the
	// general engine entirely for the (k=3, c=8) special case within
	// the single-word catalog's range (spec.md §9); it is not itself
	// cancellable or checkpointable, matching its near-instant runtime.
	if req.Verb == VerbMinunsat && req.K == 3 && req.C == 8 && req.V <= 6 {
		n, err := clique.Count(req.V)
		if err != nil {
			return Result{}, err
		}
		log.Info().Int("v", req.V).Int("k", req.K).Int("c", req.C).Msg("clique special case")
		return Result{Count: n, Processed: 1, Total: 1, Engine: "clique"}, nil
	}

	if req.V > 6 {
		return countManyVars(ctx, req, log)
	}
	return countSingleWord(ctx, req, log)
}

// countSingleWord handles v<=6, selecting V3 (hybrid) for 3-SAT unless
// forced to V2, else V2 (flat), with the pruning oracle wired in for
// 3-SAT's flat path.
func countSingleWord(ctx context.Context, req Request, log zerolog.Logger) (Result, error) {
	cat, err := catalog.Build(req.V, req.K)
	if err != nil {
		return Result{}, err
	}

	exec := kernel.NewCPUPool()

	if req.Verb == VerbMinunsat && req.K == 3 && req.V <= 7 && !req.ForceCPU {
		p := req.PrefixDepth
		if p == 0 {
			p = hybrid.DefaultPrefixDepth(req.C)
		}
		ct, err := hybrid.New(cat, req.C, p, exec)
		if err == nil && ct.NumSurvivors() > 0 {
			log.Info().Int("v", req.V).Int("k", req.K).Int("c", req.C).Int("prefix_depth", p).
				Int("survivors", ct.NumSurvivors()).Msg("selected hybrid V3 engine")
			return drive(ctx, req, log, ct, "hybrid-v3", true)
		}
		// Prune 1-3 rejected every prefix (or the dispatcher failed to
		// build): never possible for a valid all-variables-coverable
		// (v,c), but spec.md §7's "never silently downgrade" policy
		// requires the fallback to V2 be explicit and logged rather
		// than returning a silent zero.
		log.Warn().Int("v", req.V).Int("k", req.K).Int("c", req.C).
			Msg("V3 prefix pruning produced no survivors; falling back to V2")
	}

	usePrune := prune.Enabled(req.K)
	if usePrune {
		report := prune.Build(cat.F, 1<<uint(req.V), cat.G)
		if report.NumGroups == 0 {
			// The 80%-independence heuristic exhausted every candidate
			// assignment without selecting a single group (spec.md §7's
			// named failure mode for the oracle); disable the filter
			// rather than consult an all-zero G array.
			log.Warn().Msg("pruning oracle selected zero groups; disabling group-coverage filter")
			usePrune = false
		} else {
			log.Debug().Int("groups", report.NumGroups).Float64("skip_rate", report.SkipRateEstim).
				Msg("pruning oracle built")
		}
	}

	mode := flat.ModeMU
	if req.Verb == VerbUnsat {
		mode = flat.ModeUnsat
	}
	ct, err := flat.NewMode(cat, req.C, exec, usePrune, mode)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("v", req.V).Int("k", req.K).Int("c", req.C).Msg("selected flat V2 engine")
	return drive(ctx, req, log, ct, "flat-v2", true)
}

// countManyVars handles v>6 with the widened multi-word catalog
// (package wide, spec.md §4.9/C9). This variant has no prefix-pruned
// hybrid counterpart and its checkpoints are observability-only
// (spec.md §9 point 3): Resumable always reports false, so a run with
// the same (v,k,c) always restarts from zero even if a stale
// checkpoint file exists.
func countManyVars(ctx context.Context, req Request, log zerolog.Logger) (Result, error) {
	cat, err := wide.Build(req.V, req.K)
	if err != nil {
		return Result{}, err
	}
	exec := kernel.NewCPUPool()

	mode := wide.ModeMU
	if req.Verb == VerbUnsat {
		mode = wide.ModeUnsat
	}
	ct, err := wide.NewManyVarsMode(cat, req.C, exec, mode)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("v", req.V).Int("k", req.K).Int("c", req.C).Msg("selected many-vars engine")
	return drive(ctx, req, log, ct, "many-vars", ct.Resumable())
}

// drive runs dispatcher to completion or cancellation, handling
// checkpoint resume/save/delete and progress emission (spec.md §4.7
// steps 2-5). resumable selects whether a loaded checkpoint is honored
// and whether periodic saves are meaningful beyond observability.
func drive(ctx context.Context, req Request, log zerolog.Logger, d engine.Dispatcher, engineName string, resumable bool) (Result, error) {
	total := d.TotalUnits()

	var processed uint64
	var count int64
	var elapsedBase time.Duration

	if req.Checkpoint != nil {
		rec, ok, err := req.Checkpoint.Load(req.V, req.K, req.C, total)
		if err != nil {
			return Result{}, err
		}
		if ok && resumable {
			processed = rec.ProcessedUnits
			count = rec.PartialCount
			elapsedBase = time.Duration(rec.ElapsedMs) * time.Millisecond
			log.Info().Uint64("processed_units", processed).Int64("partial_count", count).
				Msg("resumed from checkpoint")
		} else if ok && !resumable {
			log.Warn().Str("engine", engineName).
				Msg("stale checkpoint found but this engine cannot resume; restarting from zero")
		}
	}

	start := time.Now()
	lastProgress := start
	lastCheckpoint := start

	save := func() error {
		if req.Checkpoint == nil {
			return nil
		}
		return req.Checkpoint.Save(checkpoint.Record{
			V: req.V, K: req.K, C: req.C,
			ProcessedUnits: processed,
			PartialCount:   count,
			ElapsedMs:      (elapsedBase + time.Since(start)).Milliseconds(),
		})
	}

	for processed < total {
		batch := uint64(engine.MaxBatchChunks)
		if remaining := total - processed; remaining < batch {
			batch = remaining
		}

		sum, err := d.RunBatch(ctx, processed, batch)
		if err != nil {
			return Result{}, err
		}

		// Drain-and-include: the batch just run always completes and
		// is folded in before cancellation is ever observed.
		count += sum
		processed += batch

		now := time.Now()
		elapsed := elapsedBase + now.Sub(start)

		if req.OnProgress != nil && now.Sub(lastProgress) >= progressInterval {
			req.OnProgress(progress.Snapshot{V: req.V, K: req.K, C: req.C, Processed: processed, Total: total, Count: count, Elapsed: elapsed})
			lastProgress = now
		}
		if req.Checkpoint != nil && now.Sub(lastCheckpoint) >= checkpointInterval {
			if err := save(); err != nil {
				return Result{}, err
			}
			lastCheckpoint = now
		}

		if ctx.Err() != nil {
			if err := save(); err != nil {
				return Result{}, err
			}
			log.Info().Uint64("processed", processed).Uint64("total", total).Msg("cancelled; partial checkpoint written")
			return Result{Count: count, Processed: processed, Total: total, Elapsed: elapsed, Cancelled: true, Engine: engineName}, nil
		}
	}

	if req.Checkpoint != nil {
		if err := req.Checkpoint.Delete(req.V, req.K, req.C); err != nil {
			return Result{}, err
		}
	}

	return Result{Count: count, Processed: processed, Total: total, Elapsed: elapsedBase + time.Since(start), Engine: engineName}, nil
}
