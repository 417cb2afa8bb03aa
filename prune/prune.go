// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package prune implements the 3-SAT pruning oracle (spec.md §4.4): a
// cheap necessary filter built from up to eight near-independent
// "hard" assignments, used to reject candidates that cannot possibly
// be UNSAT before paying for the full evaluator pass.
package prune

// GroupOverlapThreshold is the named constant for the 80% overlap
// heuristic used to keep the selected hard assignments near-independent
// (spec.md §9 open question 2).
const GroupOverlapThreshold = 0.8

// MaxGroups is G, the maximum number of hard assignments tracked; the
// group-coverage byte has 8 bits.
const MaxGroups = 8

// FullCoverage is the byte value meaning "covers every selected group",
// regardless of how many groups were actually selected (bits beyond the
// selected count are fixed at 1, per spec.md §4.4 step 3).
const FullCoverage byte = 0xFF

// Report summarizes the oracle build: how many groups were selected
// and an observed skip-rate estimate for regression tracking, per
// spec.md §9 open question 2 (the 80% threshold is a performance
// heuristic, not a correctness one, so this is logged rather than
// asserted).
type Report struct {
	NumGroups      int
	SelectedAssign []uint64
	SkipRateEstim  float64 // fraction of clauses NOT covering every group
}

// Build computes the group-coverage byte G for every clause in F
// (falsification masks) over numAssignments possible assignments, and
// writes it into dst (len(dst) must equal len(F)).
//
// Selection: greedily pick the rarest-covered assignment, then mark
// any assignment whose covering-clause set overlaps the picked one's
// by more than GroupOverlapThreshold (relative to the candidate's own
// cover size) as used, to keep groups near-independent. Repeat until
// MaxGroups are picked or no unused assignment remains.
func Build(F []uint64, numAssignments int, dst []byte) Report {
	if len(dst) != len(F) {
		panic("prune: dst must be sized len(F)")
	}
	for i := range dst {
		dst[i] = FullCoverage
	}

	cover := make([][]int, numAssignments) // cover[a] = indices of clauses falsifying a
	for a := 0; a < numAssignments; a++ {
		for c, f := range F {
			if f&(uint64(1)<<uint(a)) != 0 {
				cover[a] = append(cover[a], c)
			}
		}
	}

	used := make([]bool, numAssignments)
	selected := make([]int, 0, MaxGroups)

	for len(selected) < MaxGroups {
		best := -1
		bestCount := -1
		for a := 0; a < numAssignments; a++ {
			if used[a] {
				continue
			}
			n := len(cover[a])
			if bestCount == -1 || n < bestCount {
				bestCount = n
				best = a
			}
		}
		if best == -1 {
			break
		}

		selected = append(selected, best)
		used[best] = true

		// Mark overlapping assignments as used to promote
		// near-independence between the selected groups.
		baseSet := toSet(cover[best])
		for a := 0; a < numAssignments; a++ {
			ownSize := len(cover[a])
			if used[a] || ownSize == 0 {
				continue
			}
			overlap := intersectionSize(baseSet, cover[a])
			if float64(overlap)/float64(ownSize) > GroupOverlapThreshold {
				used[a] = true
			}
		}
	}

	var coveredEverything int
	for c, f := range F {
		var g byte
		for gi, a := range selected {
			if f&(uint64(1)<<uint(a)) != 0 {
				g |= 1 << uint(gi)
			}
		}
		for gi := len(selected); gi < 8; gi++ {
			g |= 1 << uint(gi)
		}
		dst[c] = g
		if g == FullCoverage {
			coveredEverything++
		}
	}

	skipRate := 0.0
	if len(F) > 0 {
		skipRate = 1.0 - float64(coveredEverything)/float64(len(F))
	}

	selAssign := make([]uint64, len(selected))
	for i, a := range selected {
		selAssign[i] = uint64(a)
	}

	return Report{NumGroups: len(selected), SelectedAssign: selAssign, SkipRateEstim: skipRate}
}

func toSet(xs []int) map[int]struct{} {
	m := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}

func intersectionSize(set map[int]struct{}, xs []int) int {
	n := 0
	for _, x := range xs {
		if _, ok := set[x]; ok {
			n++
		}
	}
	return n
}

// CombinedCoverage ORs the group-coverage bytes of a candidate's
// clauses; if the result isn't FullCoverage the candidate cannot be
// UNSAT and should be rejected without running the full evaluator.
func CombinedCoverage(g []byte, tuple []int) byte {
	var acc byte
	for _, i := range tuple {
		acc |= g[i]
	}
	return acc
}

// Enabled reports whether the oracle is worth using for this k: 2-SAT
// skip rates are low enough (<=11%, spec.md §4.4) that the overhead of
// building and consulting G exceeds its benefit.
func Enabled(k int) bool {
	return k == 3
}
