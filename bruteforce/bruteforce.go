// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package bruteforce is an independent, deliberately unoptimized
// reference implementation of the UNSAT count f_all(v,k,c) (spec.md
// §6's `unsat` verb, §9's brute-force cross-check). It shares the
// clause catalog with the rest of the engine — rebuilding clause
// semantics from scratch would defeat the purpose of an independent
// check just as much as reusing the optimized evaluator would — but
// recomputes full coverage from the raw falsification masks on every
// candidate instead of folding incrementally, and never consults the
// pruning oracle, the hybrid prefix filters, or candidate.State. Its
// only job is to be obviously correct, not fast; callers needing
// correctness guarantees on non-trivial (v,k,c) should use this against
// the `unsat` verb's `--verify` flag, never as a replacement for it.
package bruteforce

import (
	"fmt"

	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/comb"
)

// Count returns f_all(v,k,c): the number of canonical-orbit-weighted
// c-clause formulas over v variables that falsify every assignment,
// with no minimality or all-variables requirement.
func Count(v, k, c int) (int64, error) {
	cat, err := catalog.Build(v, k)
	if err != nil {
		return 0, err
	}
	if c < k+1 || c > cat.T {
		return 0, fmt.Errorf("bruteforce: c=%d out of range for T=%d clause types", c, cat.T)
	}

	table := comb.NewTable(cat.T, c)
	total := table.Count(cat.T, c)
	allAssign := cat.AllAssignmentsMask()

	var sum int64
	if total == 0 {
		return 0, nil
	}
	tuple := table.Unrank(0, cat.T, c)
	for i := uint64(0); i < total; i++ {
		var one, posSum, negSum uint64
		for _, idx := range tuple {
			one |= cat.F[idx]
			posSum += cat.Pos[idx]
			negSum += cat.Neg[idx]
		}
		if one == allAssign {
			sum += orbitContribution(v, posSum, negSum)
		}
		if i+1 < total {
			comb.Next(tuple, c, cat.T)
		}
	}
	return sum, nil
}

// MinimallyUnsatisfiable additionally applies the minimality and
// all-variables checks, giving an independent reference for the
// `minunsat` verb's count at the small (v,k,c) sizes this package is
// meant for.
func MinimallyUnsatisfiable(v, k, c int) (int64, error) {
	cat, err := catalog.Build(v, k)
	if err != nil {
		return 0, err
	}
	if c < k+1 || c > cat.T {
		return 0, fmt.Errorf("bruteforce: c=%d out of range for T=%d clause types", c, cat.T)
	}

	table := comb.NewTable(cat.T, c)
	total := table.Count(cat.T, c)
	allAssign := cat.AllAssignmentsMask()
	allVars := cat.AllVarsMask()

	var sum int64
	if total == 0 {
		return 0, nil
	}
	tuple := table.Unrank(0, cat.T, c)
	for i := uint64(0); i < total; i++ {
		var one, two, posSum, negSum uint64
		var varCov uint32
		for _, idx := range tuple {
			two |= one & cat.F[idx]
			one |= cat.F[idx]
			varCov |= cat.Vars[idx]
			posSum += cat.Pos[idx]
			negSum += cat.Neg[idx]
		}
		if one == allAssign && varCov == allVars {
			unique := one &^ two
			minimal := true
			for _, idx := range tuple {
				if cat.F[idx]&unique == 0 {
					minimal = false
					break
				}
			}
			if minimal {
				sum += orbitContribution(v, posSum, negSum)
			}
		}
		if i+1 < total {
			comb.Next(tuple, c, cat.T)
		}
	}
	return sum, nil
}

// orbitContribution applies the same canonicality/orbit-size step as
// candidate.evaluateCanonical, reimplemented here rather than imported
// so this package depends on nothing but catalog and comb.
func orbitContribution(v int, posSum, negSum uint64) int64 {
	stabilizer := 0
	for i := 0; i < v; i++ {
		p := (posSum >> uint(5*i)) & 0x1F
		n := (negSum >> uint(5*i)) & 0x1F
		if p < n {
			return 0
		}
		if p == n {
			stabilizer++
		}
	}
	return int64(1) << uint(v-stabilizer)
}
