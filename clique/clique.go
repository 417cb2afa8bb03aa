// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package clique implements the dedicated exact-cover enumerator for
// the 3-SAT "c = 8" special case (spec.md §9): at exactly 8 clauses of
// 3 literals each, a candidate's 8 falsification masks have combined
// popcount c·2^(v-3) = 8·2^(v-3) = 2^v, exactly the size of the full
// assignment space. Full coverage (one = allAssignmentsMask) and that
// popcount identity together force the masks to be pairwise disjoint:
// any overlap would make the union strictly smaller than the summed
// popcount. So at c=8 "MU" collapses to "find 8 pairwise-disjoint
// clause types whose variables span all of v" — an 8-clique search
// over the clause-disjointness graph (vertices are clause types, edges
// join disjoint falsification masks) instead of a walk over C(T,8)
// candidates, most of which are never close to disjoint.
package clique

import (
	"fmt"
	"math/bits"

	"github.com/satforge/minunsat/catalog"
)

const cliqueSize = 8

// Count returns the MU count for (v, k=3, c=8), matching what the
// general engine would produce if allowed to complete (spec.md §9).
func Count(v int) (int64, error) {
	if v < 3 || v > 6 {
		return 0, fmt.Errorf("clique: v=%d out of range [3,6] for the single-word catalog", v)
	}
	cat, err := catalog.Build(v, 3)
	if err != nil {
		return 0, err
	}

	adj := buildDisjointnessGraph(cat)

	var total int64
	clique := make([]int, 0, cliqueSize)
	search(cat, adj, 0, clique, &total)
	return total, nil
}

// buildDisjointnessGraph returns, for each clause index i, the
// ascending set of indices j > i whose falsification masks are
// disjoint from cat.F[i].
func buildDisjointnessGraph(cat *catalog.Catalog) [][]int {
	adj := make([][]int, cat.T)
	for i := 0; i < cat.T; i++ {
		for j := i + 1; j < cat.T; j++ {
			if cat.F[i]&cat.F[j] == 0 {
				adj[i] = append(adj[i], j)
			}
		}
	}
	return adj
}

// search extends clique with candidates from adj, starting no earlier
// than start, pruning to vertices adjacent to every clause already
// chosen. When clique reaches cliqueSize it is, by construction, a
// pairwise-disjoint cover of some subset of assignments; it is scored
// only if that subset is everything and every variable is used.
func search(cat *catalog.Catalog, adj [][]int, start int, clique []int, total *int64) {
	if len(clique) == cliqueSize {
		scoreClique(cat, clique, total)
		return
	}
	// Not enough remaining vertices to ever complete the clique.
	if cat.T-start < cliqueSize-len(clique) {
		return
	}

	for i := start; i < cat.T; i++ {
		if !adjacentToAll(adj, clique, i) {
			continue
		}
		clique = append(clique, i)
		search(cat, adj, i+1, clique, total)
		clique = clique[:len(clique)-1]
	}
}

// adjacentToAll reports whether candidate i is disjoint from every
// clause already in clique. Since i > every member of clique (the
// search only ever extends forward), membership is checked against
// each member's own adjacency list.
func adjacentToAll(adj [][]int, clique []int, i int) bool {
	for _, c := range clique {
		if !contains(adj[c], i) {
			return false
		}
	}
	return true
}

// contains binary-searches an ascending adjacency list; lists stay
// short enough in practice (v <= 6) that a dedicated set structure
// would not pay for itself.
func contains(sorted []int, target int) bool {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(sorted) && sorted[lo] == target
}

// scoreClique applies the all-variables filter and the canonicality /
// orbit-size step; disjointness already guarantees full coverage and
// minimality.
func scoreClique(cat *catalog.Catalog, clique []int, total *int64) {
	var varCov uint32
	var posSum, negSum uint64
	for _, i := range clique {
		varCov |= cat.Vars[i]
		posSum += cat.Pos[i]
		negSum += cat.Neg[i]
	}
	if varCov != cat.AllVarsMask() {
		return
	}

	stabilizer := 0
	for i := 0; i < cat.V; i++ {
		p := (posSum >> uint(5*i)) & 0x1F
		n := (negSum >> uint(5*i)) & 0x1F
		if p < n {
			return
		}
		if p == n {
			stabilizer++
		}
	}
	*total += int64(1) << uint(cat.V-stabilizer)
}

// popcountSum is exposed for tests that want to confirm the exact-cover
// identity cliqueSize * 2^(v-3) == 2^v that this package's entire
// algorithm depends on.
func popcountSum(cat *catalog.Catalog, clique []int) int {
	n := 0
	for _, i := range clique {
		n += bits.OnesCount64(cat.F[i])
	}
	return n
}
