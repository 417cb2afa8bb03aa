// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThousands(t *testing.T) {
	cases := map[int64]string{
		0:         "0",
		7:         "7",
		999:       "999",
		1000:      "1,000",
		1234567:   "1,234,567",
		-42:       "-42",
		-1234:     "-1,234",
		100000000: "100,000,000",
	}
	for n, want := range cases {
		require.Equal(t, want, Thousands(n), "n=%d", n)
	}
}

func TestFraction(t *testing.T) {
	require.Equal(t, 0.0, Snapshot{}.Fraction())
	s := Snapshot{Processed: 25, Total: 100}
	require.InDelta(t, 0.25, s.Fraction(), 1e-9)
}

func TestStringContainsKeyFields(t *testing.T) {
	s := Snapshot{V: 7, K: 3, C: 12, Processed: 1234567, Total: 9876543, Count: 42, Elapsed: 3*time.Minute + 12*time.Second}
	out := s.String()
	require.Contains(t, out, "v=7")
	require.Contains(t, out, "l=3")
	require.Contains(t, out, "c=12")
	require.Contains(t, out, "1,234,567")
	require.Contains(t, out, "9,876,543")
}
