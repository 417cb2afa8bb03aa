// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Command minunsat counts minimally unsatisfiable k-CNF formulas over v
// variables and c clauses (spec.md §6), selecting the clique, hybrid
// V3, flat V2, or many-vars engine automatically.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/satforge/minunsat/checkpoint"
	"github.com/satforge/minunsat/config"
	"github.com/satforge/minunsat/msatlog"
	"github.com/satforge/minunsat/orchestrator"
	"github.com/satforge/minunsat/progress"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("minunsat", flag.ContinueOnError)
	params, err := config.ParseMinunsat(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := msatlog.Default()

	var store *checkpoint.Store
	if params.Checkpoint {
		store, err = checkpoint.NewStore("Checkpoints")
		if err != nil {
			log.Error().Err(err).Msg("failed to open checkpoint store")
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := orchestrator.Count(ctx, orchestrator.Request{
		V: params.V, K: params.K, C: params.C,
		Verb:        orchestrator.VerbMinunsat,
		ForceCPU:    params.ForceCPU,
		PrefixDepth: params.PrefixDepth,
		Checkpoint:  store,
		Logger:      &log,
		OnProgress: func(s progress.Snapshot) {
			log.Info().Msg(s.String())
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if res.Cancelled {
		fmt.Printf("[Cancelled] Processed: %s / %s\n", progress.Thousands(int64(res.Processed)), progress.Thousands(int64(res.Total)))
		fmt.Printf("[Partial] MIN-UNSAT count so far: %s\n", progress.Thousands(res.Count))
		return 0
	}

	fmt.Printf("RESULT: f_all(v=%d, l=%d, c=%d) = %s\n", params.V, params.K, params.C, progress.Thousands(res.Count))
	if params.Benchmark {
		fmt.Printf("engine=%s elapsed=%s (wall=%s)\n", res.Engine, res.Elapsed.Round(time.Millisecond), time.Since(start).Round(time.Millisecond))
	}
	return 0
}
