// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package wide widens the catalog and per-candidate evaluator (spec.md
// §4.1, §4.3) to v > 6, where the 2^v assignments no longer fit a
// single 64-bit word. A github.com/bits-and-blooms/bitset.BitSet
// builds each clause's falsification mask once at catalog-construction
// time; the result is immediately frozen into a raw []uint64 word
// slice, and the hot per-candidate fold loop below only ever touches
// those raw words, preserving the O(c)-per-candidate bound of the
// single-word evaluator.
package wide

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/satforge/minunsat/comb"
)

// ConfigError reports an invalid (v, k) combination for the widened
// catalog.
type ConfigError struct {
	Kind    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("minunsat: config error (%s): %s", e.Kind, e.Message)
}

// varsPerWord is how many 5-bit polarity-stride fields fit in one
// 64-bit word (60 of 64 bits used, 4 left idle) without a field ever
// straddling a word boundary.
const varsPerWord = 12

// Catalog holds the clause universe for v > 6 variables. Every
// per-clause falsification mask and polarity sum spans AW / PW words
// instead of one.
type Catalog struct {
	V, K int
	T    int
	AW   int // assignment words, ceil(2^V / 64)
	PW   int // polarity words, ceil(V / varsPerWord)

	F    [][]uint64 // T x AW, falsification mask per clause
	Vars []uint64   // T, variable-usage mask (v <= 64 so one word suffices)
	Pos  [][]uint64 // T x PW, packed 5-bit positive-occurrence counters
	Neg  [][]uint64 // T x PW
}

// AllAssignmentsWords returns the AW-word mask with the low 2^v bits
// set.
func (c *Catalog) AllAssignmentsWords() []uint64 {
	out := make([]uint64, c.AW)
	remaining := uint64(1) << uint(c.V)
	for i := range out {
		if remaining >= 64 {
			out[i] = ^uint64(0)
			remaining -= 64
		} else if remaining > 0 {
			out[i] = (uint64(1) << remaining) - 1
			remaining = 0
		}
	}
	return out
}

// AllVarsMask returns the bitmask with the low v bits set.
func (c *Catalog) AllVarsMask() uint64 {
	if c.V == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(c.V)) - 1
}

// Build constructs the widened catalog for (v, k) with v > 6. Callers
// with v <= 6 should use the sibling catalog package's single-word
// representation instead.
func Build(v, k int) (*Catalog, error) {
	if k != 2 && k != 3 {
		return nil, &ConfigError{Kind: "k", Message: fmt.Sprintf("k must be 2 or 3, got %d", k)}
	}
	if v <= 6 {
		return nil, &ConfigError{Kind: "v", Message: fmt.Sprintf("v=%d fits the single-word catalog; use package catalog instead", v)}
	}

	varTuples := enumerateVarTuples(v, k)
	polarityTuples := enumeratePolarityTuples(k)
	T := len(varTuples) * len(polarityTuples)

	numAssignments := uint64(1) << uint(v)
	aw := int((numAssignments + 63) / 64)
	pw := (v + varsPerWord - 1) / varsPerWord

	c := &Catalog{
		V: v, K: k, T: T, AW: aw, PW: pw,
		F:    make([][]uint64, T),
		Vars: make([]uint64, T),
		Pos:  make([][]uint64, T),
		Neg:  make([][]uint64, T),
	}

	id := 0
	for _, vt := range varTuples {
		var usage uint64
		for _, vi := range vt {
			usage |= 1 << uint(vi)
		}
		for _, pt := range polarityTuples {
			pos := make([]uint64, pw)
			neg := make([]uint64, pw)
			for idx, vi := range vt {
				word, shift := vi/varsPerWord, uint(5*(vi%varsPerWord))
				if pt[idx] == negPolarity {
					neg[word] |= 1 << shift
				} else {
					pos[word] |= 1 << shift
				}
			}

			bs := bitset.New(uint(numAssignments))
			for a := uint64(0); a < numAssignments; a++ {
				if clauseFalsified(a, vt, pt) {
					bs.Set(uint(a))
				}
			}
			falsify := make([]uint64, aw)
			copy(falsify, bs.Bytes())

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

// State is the widened analog of candidate.State: the running fold
// over a tuple of clause-type indices, with coverage and polarity
// fields spanning AW / PW words.
type State struct {
	One, Two []uint64
	VarCov   uint64
	PosSum   []uint64
	NegSum   []uint64
}

// NewState allocates a zero State sized for cat.
func NewState(cat *Catalog) State {
	return State{
		One: make([]uint64, cat.AW), Two: make([]uint64, cat.AW),
		PosSum: make([]uint64, cat.PW), NegSum: make([]uint64, cat.PW),
	}
}

// Fold folds one more clause into the state.
func (s *State) Fold(f []uint64, v uint64, pos, neg []uint64) {
	for i := range s.One {
		s.Two[i] |= s.One[i] & f[i]
		s.One[i] |= f[i]
	}
	s.VarCov |= v
	for i := range s.PosSum {
		s.PosSum[i] += pos[i]
		s.NegSum[i] += neg[i]
	}
}

// Result is the outcome of evaluating one candidate tuple.
type Result struct {
	MU           bool
	Contribution int64
}

func wordsEqual(a, b []uint64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func anyNonzero(words []uint64) bool {
	for _, w := range words {
		if w != 0 {
			return true
		}
	}
	return false
}

// EvaluateFull runs the widened §4.3 test over tuple (ascending
// clause-type indices).
func EvaluateFull(cat *Catalog, tuple []int) Result {
	s := NewState(cat)
	for _, i := range tuple {
		s.Fold(cat.F[i], cat.Vars[i], cat.Pos[i], cat.Neg[i])
	}

	allAssign := cat.AllAssignmentsWords()
	if s.VarCov != cat.AllVarsMask() || !wordsEqual(s.One, allAssign) {
		return Result{}
	}

	unique := make([]uint64, cat.AW)
	for i := range unique {
		unique[i] = s.One[i] &^ s.Two[i]
	}

	masked := make([]uint64, cat.AW)
	for _, i := range tuple {
		for w := range masked {
			masked[w] = cat.F[i][w] & unique[w]
		}
		if !anyNonzero(masked) {
			return Result{}
		}
	}

	return evaluateCanonical(cat, s)
}

// EvaluateUnsat runs the relaxed UNSAT-only test (spec.md §6) over a
// widened catalog: full coverage only, dropping the all-variables and
// minimality checks EvaluateFull applies.
func EvaluateUnsat(cat *Catalog, tuple []int) Result {
	s := NewState(cat)
	for _, i := range tuple {
		s.Fold(cat.F[i], cat.Vars[i], cat.Pos[i], cat.Neg[i])
	}

	allAssign := cat.AllAssignmentsWords()
	if !wordsEqual(s.One, allAssign) {
		return Result{}
	}
	return evaluateCanonical(cat, s)
}

// evaluateCanonical applies the orbit-size / canonicality step: the
// candidate is canonical iff pos_i >= neg_i for every variable i, and
// its contribution is 2^(v-s) where s counts the variables with
// pos_i == neg_i.
func evaluateCanonical(cat *Catalog, s State) Result {
	stabilizer := 0
	for i := 0; i < cat.V; i++ {
		word, shift := i/varsPerWord, uint(5*(i%varsPerWord))
		p := (s.PosSum[word] >> shift) & 0x1F
		n := (s.NegSum[word] >> shift) & 0x1F
		if p < n {
			return Result{}
		}
		if p == n {
			stabilizer++
		}
	}
	return Result{MU: true, Contribution: int64(1) << uint(cat.V-stabilizer)}
}
