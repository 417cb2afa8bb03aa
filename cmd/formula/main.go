// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Command formula evaluates the 2-SAT closed-form MU count for (v, c)
// without enumeration (spec.md §6), optionally cross-checking against
// the known-value verification table.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/satforge/minunsat/closedform"
	"github.com/satforge/minunsat/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("formula", flag.ContinueOnError)
	params, err := config.ParseFormula(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	n, err := closedform.Count(params.V, params.C)
	if err != nil {
		if errors.Is(err, closedform.ErrUnknownDiagonal) {
			fmt.Fprintf(os.Stderr, "formula: no known closed form for v=%d c=%d\n", params.V, params.C)
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("RESULT: f_all(v=%d, c=%d) = %s\n", params.V, params.C, thousandsBig(n))
	if params.Diagonal {
		fmt.Printf("diagonal d = c - v = %d\n", params.C-params.V)
	}

	if params.Verify {
		known, ok := closedform.KnownValue(params.V, params.C)
		if !ok {
			fmt.Println("[Verify] no known-value table entry for this (v, c); skipped")
		} else if n.Cmp(big.NewInt(known)) == 0 {
			fmt.Printf("[Verify] matches known value %s\n", thousandsBig(big.NewInt(known)))
		} else {
			fmt.Printf("[Verify] MISMATCH: computed %s, known value %s\n", thousandsBig(n), thousandsBig(big.NewInt(known)))
			return 1
		}
	}

	return 0
}

// thousandsBig formats a big.Int with comma separators, the big.Int
// counterpart of progress.Thousands: the closed-form engine's outputs
// can exceed int64 range at large v, so this command needs its own
// arbitrary-precision formatter rather than converting down.
func thousandsBig(n *big.Int) string {
	s := n.String()
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
