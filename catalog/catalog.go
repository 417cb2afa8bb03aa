// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package catalog builds the universe of k-clauses over v Boolean
// variables (v <= 6, single 64-bit assignment word) and their
// falsification bitmasks, variable-usage masks, and packed polarity
// vectors. For v > 6 see the sibling wide package, which widens the
// same construction to an array of words.
package catalog

import (
	"fmt"

	"github.com/satforge/minunsat/comb"
)

// ConfigError reports an invalid (v, k) or c combination. It is the
// only error the catalog builder returns; there are no transient
// failures in a pure function of its inputs.
type ConfigError struct {
	Kind    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("minunsat: config error (%s): %s", e.Kind, e.Message)
}

// MaxPolarityClauses is the largest c for which the packed 5-bit
// polarity stride used by P+/P- cannot overflow into its neighbor
// field (spec.md §4.3, §9 note 5).
const MaxPolarityClauses = 31

// Catalog holds the clause universe for a fixed (v, k) with v <= 6.
type Catalog struct {
	V, K int
	T    int // number of clause types, C(v,k) * 2^k

	// F[c] is the falsification bitmask: bit a is set iff clause c is
	// falsified by assignment a. One 64-bit word covers all 2^v <= 64
	// assignments.
	F []uint64

	// Vars is the per-clause variable-usage mask (v bits).
	Vars []uint32

	// Pos/Neg are packed per-variable occurrence counters, 5 bits per
	// variable, stride 5*i for variable i.
	Pos []uint64
	Neg []uint64

	// G is the group-coverage byte per clause, populated only when the
	// 3-SAT pruning oracle (package prune) is attached; it starts as
	// all-zero (meaning "no groups selected yet", not "covers nothing" —
	// callers must not consult it before prune.Build runs).
	G []byte
}

// AllAssignmentsMask returns the bitmask with the low 2^v bits set.
func (c *Catalog) AllAssignmentsMask() uint64 {
	if c.V == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << (uint64(1) << uint(c.V))) - 1
}

// AllVarsMask returns the bitmask with the low v bits set.
func (c *Catalog) AllVarsMask() uint32 {
	return (uint32(1) << uint(c.V)) - 1
}

// Build constructs the clause catalog for (v, k). v must be in
// [k, 6] and k in {2, 3}; for v > 6 use the wide package instead.
func Build(v, k int) (*Catalog, error) {
	if k != 2 && k != 3 {
		return nil, &ConfigError{Kind: "k", Message: fmt.Sprintf("k must be 2 or 3, got %d", k)}
	}
	if v < k || v > 6 {
		return nil, &ConfigError{Kind: "v", Message: fmt.Sprintf("v must be in [%d,6] for the single-word catalog, got %d", k, v)}
	}

	varTuples := enumerateVarTuples(v, k)
	polarityTuples := enumeratePolarityTuples(k)
	T := len(varTuples) * len(polarityTuples)

	c := &Catalog{
		V: v, K: k, T: T,
		F:    make([]uint64, T),
		Vars: make([]uint32, T),
		Pos:  make([]uint64, T),
		Neg:  make([]uint64, T),
		G:    make([]byte, T),
	}

	numAssignments := uint64(1) << uint(v)
	id := 0
	for _, vt := range varTuples {
		var usage uint32
		for _, vi := range vt {
			usage |= 1 << uint(vi)
		}
		for _, pt := range polarityTuples {
			var pos, neg uint64
			for idx, vi := range vt {
				if pt[idx] == negPolarity {
					neg |= 1 << uint(5*vi)
				} else {
					pos |= 1 << uint(5*vi)
				}
			}

			var falsify uint64
			for a := uint64(0); a < numAssignments; a++ {
				if clauseFalsified(a, vt, pt) {
					falsify |= 1 << a
				}
			}

			c.F[id] = falsify
			c.Vars[id] = usage
			c.Pos[id] = pos
			c.Neg[id] = neg
			id++
		}
	}

	return c, nil
}

const (
	posPolarity = 0
	negPolarity = 1
)

// clauseFalsified reports whether assignment a falsifies the clause
// with variables vt and polarities pt: every literal must evaluate
// false, i.e. for pos polarity the variable bit must be 0, for neg
// polarity it must be 1.
func clauseFalsified(a uint64, vt []int, pt []int) bool {
	for i, vi := range vt {
		bit := (a >> uint(vi)) & 1
		if pt[i] == posPolarity {
			if bit != 0 {
				return false
			}
		} else {
			if bit != 1 {
				return false
			}
		}
	}
	return true
}

// enumerateVarTuples returns every ascending k-tuple of variable
// indices in [0,v) in lexicographic order.
func enumerateVarTuples(v, k int) [][]int {
	n := comb.NewTable(v, k)
	count := n.Count(v, k)
	out := make([][]int, 0, count)
	tuple := make([]int, k)
	for i := range tuple {
		tuple[i] = i
	}
	for {
		cp := make([]int, k)
		copy(cp, tuple)
		out = append(out, cp)
		if !comb.Next(tuple, k, v) {
			break
		}
	}
	return out
}

// enumeratePolarityTuples returns every k-tuple over {pos,neg} in
// ascending binary order (pos < neg), i.e. standard binary counting
// with pos=0, neg=1.
func enumeratePolarityTuples(k int) [][]int {
	total := 1 << uint(k)
	out := make([][]int, total)
	for p := 0; p < total; p++ {
		tuple := make([]int, k)
		for i := 0; i < k; i++ {
			tuple[i] = (p >> uint(k-1-i)) & 1
		}
		out[p] = tuple
	}
	return out
}
