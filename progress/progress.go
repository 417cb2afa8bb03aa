// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package progress models the point-in-time snapshots the orchestrator
// emits during a long-running count (spec.md §4.7 step 3) and renders
// them for the CLI and for structured logging.
package progress

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Snapshot is one progress record: how much of the total work is done,
// the running MU count, and how long the run has been going.
type Snapshot struct {
	V, K, C   int
	Processed uint64
	Total     uint64
	Count     int64
	Elapsed   time.Duration
}

// Fraction returns Processed/Total, or 0 when Total is 0.
func (s Snapshot) Fraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Processed) / float64(s.Total)
}

// Thousands formats n with comma separators, e.g. 1234567 -> "1,234,567".
// The CLI's RESULT line and progress reports both need this and no
// library in the dependency pack provides it, so it is the one piece
// of formatting in this package built on plain strconv.
func Thousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// String renders a snapshot for human consumption, e.g.:
//
//	v=7 l=3 c=12: 1,234,567 / 9,876,543 units (12.5%), count=42, elapsed=3m12s
func (s Snapshot) String() string {
	return fmt.Sprintf(
		"v=%d l=%d c=%d: %s / %s units (%.1f%%), count=%s, elapsed=%s",
		s.V, s.K, s.C,
		Thousands(int64(s.Processed)),
		Thousands(int64(s.Total)),
		s.Fraction()*100,
		Thousands(s.Count),
		s.Elapsed.Round(time.Second),
	)
}
