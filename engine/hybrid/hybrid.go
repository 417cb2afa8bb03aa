// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package hybrid implements the prefix-pruned hybrid dispatcher
// (spec.md §4.6, "V3"): short prefixes are enumerated on the host and
// filtered by three conservative necessary conditions, and only
// surviving prefixes dispatch a chunked suffix enumeration. This is
// the component that makes 3-SAT enumeration at moderate (v,c)
// tractable.
package hybrid

import (
	"context"
	"fmt"
	"math/bits"
	"sort"

	"github.com/satforge/minunsat/candidate"
	"github.com/satforge/minunsat/catalog"
	"github.com/satforge/minunsat/comb"
	"github.com/satforge/minunsat/engine"
	"github.com/satforge/minunsat/kernel"
)

// DefaultPrefixDepth picks P=3 for c>12 and P=2 otherwise, per
// spec.md §4.6.
func DefaultPrefixDepth(c int) int {
	if c > 12 {
		return 3
	}
	return 2
}

// survivor is one prefix that passed all three prune tests, with its
// folded state and suffix window ready for chunked enumeration.
type survivor struct {
	prefix       []int
	state        candidate.State
	suffixOffset int // first catalog index in the suffix window
	suffixSize   int // N = T - lastIndex - 1
	suffixChunks uint64
}

// Counter is the V3 dispatcher for a fixed (v, k, c, P).
type Counter struct {
	cat       *catalog.Catalog
	arrays    candidate.Arrays
	table     *comb.Table
	c, p, cs  int
	survivors []survivor
	cumChunks []uint64 // cumChunks[i] = total suffix chunks in survivors[:i]
	exec      kernel.Executor
}

// New precomputes the suffix feasibility arrays and walks every
// P-prefix once, retaining only the survivors, then builds the
// flattened cumulative-chunks index used by RunBatch.
func New(cat *catalog.Catalog, c, p int, exec kernel.Executor) (*Counter, error) {
	if p != 2 && p != 3 {
		return nil, fmt.Errorf("hybrid: prefix depth must be 2 or 3, got %d", p)
	}
	cs := c - p
	if cs < 1 {
		return nil, fmt.Errorf("hybrid: c=%d too small for prefix depth %d", c, p)
	}

	maxR := p
	if cs > maxR {
		maxR = cs
	}
	table := comb.NewTable(cat.T, maxR)

	suffCov, suffVar := suffixFeasibility(cat)

	ct := &Counter{
		cat:    cat,
		arrays: candidate.Arrays{F: cat.F, Vars: cat.Vars, Pos: cat.Pos, Neg: cat.Neg},
		table:  table,
		c:      c, p: p, cs: cs,
		exec: exec,
	}
	ct.buildSurvivors(suffCov, suffVar)
	return ct, nil
}

// suffixFeasibility computes, for every clause index i, the OR of
// F[j]/Vars[j] over all j>i (spec.md §4.6).
func suffixFeasibility(cat *catalog.Catalog) (suffCov []uint64, suffVar []uint32) {
	T := cat.T
	suffCov = make([]uint64, T)
	suffVar = make([]uint32, T)
	for i := T - 2; i >= 0; i-- {
		suffCov[i] = suffCov[i+1] | cat.F[i+1]
		suffVar[i] = suffVar[i+1] | cat.Vars[i+1]
	}
	return
}

// buildSurvivors walks every P-prefix in lexicographic order and
// retains those passing all three conservative filters.
func (ct *Counter) buildSurvivors(suffCov []uint64, suffVar []uint32) {
	T := ct.cat.T
	allAssign := ct.cat.AllAssignmentsMask()
	allVars := ct.cat.AllVarsMask()
	falsifyPerClause := 1 << uint(ct.cat.V-ct.cat.K)
	capacity := ct.cs * falsifyPerClause

	total := ct.table.Count(T, ct.p)
	if total == 0 {
		ct.cumChunks = []uint64{0}
		return
	}
	prefix := ct.table.Unrank(0, T, ct.p)

	var cum uint64
	ct.cumChunks = append(ct.cumChunks, 0)

	for i := uint64(0); i < total; i++ {
		last := prefix[ct.p-1]
		n := T - last - 1 // suffix window size

		if n >= ct.cs {
			var st candidate.State
			for _, idx := range prefix {
				st.Fold(ct.cat.F[idx], ct.cat.Vars[idx], ct.cat.Pos[idx], ct.cat.Neg[idx])
			}

			passCoverage := st.One|suffCov[last] == allAssign
			passVars := st.VarCov|suffVar[last] == allVars
			missing := 0
			if ct.cat.V <= 63 {
				missing = (1 << uint(ct.cat.V)) - bits.OnesCount64(st.One)
			}
			passCapacity := missing <= capacity

			if passCoverage && passVars && passCapacity {
				chunks := (ct.table.Count(n, ct.cs) + engine.ChunkSize - 1) / engine.ChunkSize
				pfx := make([]int, ct.p)
				copy(pfx, prefix)
				ct.survivors = append(ct.survivors, survivor{
					prefix:       pfx,
					state:        st,
					suffixOffset: last + 1,
					suffixSize:   n,
					suffixChunks: chunks,
				})
				cum += chunks
				ct.cumChunks = append(ct.cumChunks, cum)
			}
		}

		if i+1 < total {
			comb.Next(prefix, ct.p, T)
		}
	}
}

// TotalUnits is W, the flattened count of all surviving prefixes'
// suffix chunks.
func (ct *Counter) TotalUnits() uint64 {
	if len(ct.cumChunks) == 0 {
		return 0
	}
	return ct.cumChunks[len(ct.cumChunks)-1]
}

// NumSurvivors reports how many of the C(T,P) prefixes passed the
// prune filters, for diagnostics/logging.
func (ct *Counter) NumSurvivors() int { return len(ct.survivors) }

// ownerOf finds the survivor index owning global chunk g via binary
// search over the cumulative-chunks vector.
func (ct *Counter) ownerOf(g uint64) (survivorIdx int, localChunk uint64) {
	idx := sort.Search(len(ct.cumChunks)-1, func(i int) bool { return ct.cumChunks[i+1] > g })
	return idx, g - ct.cumChunks[idx]
}

// evalUnit evaluates one flattened work unit (a suffix chunk within
// one surviving prefix) and returns its contribution sum.
func (ct *Counter) evalUnit(g uint64) int64 {
	sIdx, localChunk := ct.ownerOf(g)
	sv := &ct.survivors[sIdx]

	total := ct.table.Count(sv.suffixSize, ct.cs)
	start := localChunk * engine.ChunkSize
	if start >= total {
		return 0
	}
	n := uint64(engine.ChunkSize)
	if remaining := total - start; remaining < n {
		n = remaining
	}

	relTuple := ct.table.Unrank(start, sv.suffixSize, ct.cs)
	absTuple := make([]int, ct.cs)

	allVars := ct.cat.AllVarsMask()
	allAssign := ct.cat.AllAssignmentsMask()

	var sum int64
	for i := uint64(0); i < n; i++ {
		for j, r := range relTuple {
			absTuple[j] = r + sv.suffixOffset
		}
		res := candidate.EvaluateSuffix(ct.arrays, sv.prefix, absTuple, sv.state, allVars, allAssign, ct.cat.V)
		if res.MU {
			sum += res.Contribution
		}
		if i+1 < n {
			comb.Next(relTuple, ct.cs, sv.suffixSize)
		}
	}
	return sum
}

// RunBatch dispatches [startUnit, startUnit+numUnits) flattened work
// units through the kernel executor.
func (ct *Counter) RunBatch(ctx context.Context, startUnit, numUnits uint64) (int64, error) {
	return ct.exec.Run(ctx, int(numUnits), func(u int) int64 {
		return ct.evalUnit(startUnit + uint64(u))
	})
}
