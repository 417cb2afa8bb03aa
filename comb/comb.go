// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package comb implements the bijection between integer ranks and
// r-subsets of {0,...,n-1} in lexicographic order, plus the Pascal
// table that backs C(n,r) queries for the enumeration engines.
package comb

import "fmt"

// Table is a precomputed binomial-coefficient table, sized (n+1) x (r+1),
// sufficient for any query C(a, b) with a <= n and b <= r. Only
// C(., <=r) is ever queried by the dispatchers, so the table need not
// cover the full Pascal triangle.
type Table struct {
	n, r int
	rows [][]uint64
}

// NewTable builds the Pascal table for subsets of size up to r drawn
// from up to n elements. Intermediate products are kept within 64 bits
// by dividing after each multiplication, so values up to n=T, r=c in
// the engine's scope (C(T,c) < 2^63) never overflow.
func NewTable(n, r int) *Table {
	if n < 0 || r < 0 {
		return &Table{n: 0, r: 0, rows: [][]uint64{{1}}}
	}
	rows := make([][]uint64, n+1)
	for i := 0; i <= n; i++ {
		row := make([]uint64, r+1)
		row[0] = 1
		for j := 1; j <= r && j <= i; j++ {
			row[j] = row[j-1] * uint64(i-j+1) / uint64(j)
		}
		rows[i] = row
	}
	return &Table{n: n, r: r, rows: rows}
}

// Count returns C(n, r), the number of r-subsets of an n-element set.
// r < 0 or r > n yields 0; r is clamped against the table's built
// capacity by the caller (the dispatchers never ask for r beyond the
// clause count c the table was built with).
func (t *Table) Count(n, r int) uint64 {
	if r < 0 || r > n || n < 0 {
		return 0
	}
	if n > t.n || r > t.r {
		panic(fmt.Sprintf("comb: Count(%d,%d) exceeds table built for (%d,%d)", n, r, t.n, t.r))
	}
	return t.rows[n][r]
}

// Unrank produces the idx-th r-subset of {0,...,n-1} in ascending
// lexicographic order, as an ascending-sorted slice of length r.
//
// Algorithm: for each output slot j, advance a cursor e from the
// previous choice+1 while C(n-e-1, r-j-1) <= idx, subtracting the
// count each step; when the inequality fails, e is the j-th chosen
// element.
func (t *Table) Unrank(idx uint64, n, r int) []int {
	out := make([]int, r)
	e := 0
	for j := 0; j < r; j++ {
		remaining := r - j - 1
		for {
			c := t.Count(n-e-1, remaining)
			if c <= idx {
				idx -= c
				e++
				continue
			}
			break
		}
		out[j] = e
		e++
	}
	return out
}

// Rank computes the lexicographic index of an ascending r-subset
// tuple, the inverse of Unrank.
func (t *Table) Rank(tuple []int, n int) uint64 {
	r := len(tuple)
	var idx uint64
	prev := -1
	for j, v := range tuple {
		remaining := r - j - 1
		for e := prev + 1; e < v; e++ {
			idx += t.Count(n-e-1, remaining)
		}
		prev = v
	}
	return idx
}

// Next advances tuple to its lexicographic successor in place and
// reports whether one exists. From the terminal tuple it returns false
// and leaves tuple unchanged.
func Next(tuple []int, r, n int) bool {
	i := r - 1
	for i >= 0 && tuple[i] == n-r+i {
		i--
	}
	if i < 0 {
		return false
	}
	tuple[i]++
	for j := i + 1; j < r; j++ {
		tuple[j] = tuple[j-1] + 1
	}
	return true
}
