// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Command unsat counts all unsatisfiable k-CNF formulas over v
// variables and c clauses (spec.md §6), dropping the minimality and
// all-variables requirements minunsat applies, with optional CSV
// output and a brute-force cross-check.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/satforge/minunsat/bruteforce"
	"github.com/satforge/minunsat/config"
	"github.com/satforge/minunsat/orchestrator"
	"github.com/satforge/minunsat/progress"
)

const csvHeader = "# v,l,c,UNSAT,Combinations,TimeMs,Mode\nv,l,c,UNSAT,Combinations,TimeMs,Mode\n"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("unsat", flag.ContinueOnError)
	params, err := config.ParseUnsat(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	start := time.Now()
	res, err := orchestrator.Count(context.Background(), orchestrator.Request{
		V: params.V, K: params.K, C: params.C,
		Verb:     orchestrator.VerbUnsat,
		ForceCPU: params.ForceCPU,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	elapsed := time.Since(start)

	fmt.Printf("RESULT: UNSAT(v=%d, l=%d, c=%d) = %s\n", params.V, params.K, params.C, progress.Thousands(res.Count))

	if params.Verify {
		want, err := bruteforce.Count(params.V, params.K, params.C)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if want != res.Count {
			fmt.Printf("[Verify] MISMATCH: engine %s, brute force %s\n", progress.Thousands(res.Count), progress.Thousands(want))
			return 1
		}
		fmt.Println("[Verify] matches brute-force reference")
	}

	if params.CSVPath != "" {
		if err := appendCSVRow(params, res, elapsed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	return 0
}

// appendCSVRow appends one row to path, writing the header preamble
// first if the file does not already exist.
func appendCSVRow(params config.UnsatParams, res orchestrator.Result, elapsed time.Duration) error {
	needsHeader := false
	if _, err := os.Stat(params.CSVPath); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(params.CSVPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("unsat: open csv: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := f.WriteString(csvHeader); err != nil {
			return fmt.Errorf("unsat: write csv header: %w", err)
		}
	}

	row := fmt.Sprintf("%d,%d,%d,%d,%d,%d,%s\n",
		params.V, params.K, params.C, res.Count, res.Total, elapsed.Milliseconds(), res.Engine)
	if _, err := f.WriteString(row); err != nil {
		return fmt.Errorf("unsat: write csv row: %w", err)
	}
	return nil
}
