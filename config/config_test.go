// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate2SATv2OnlyC4(t *testing.T) {
	require.NoError(t, Params{V: 2, K: 2, C: 4}.Validate())
	require.Error(t, Params{V: 2, K: 2, C: 5}.Validate())
	require.Error(t, Params{V: 2, K: 2, C: 3}.Validate())
}

func TestValidate2SATMinimumIsVPlus1(t *testing.T) {
	require.Error(t, Params{V: 4, K: 2, C: 4}.Validate())
	require.NoError(t, Params{V: 4, K: 2, C: 5}.Validate())
}

func TestValidate3SATv3MinimumIsEight(t *testing.T) {
	require.Error(t, Params{V: 3, K: 3, C: 7}.Validate())
	require.NoError(t, Params{V: 3, K: 3, C: 8}.Validate())
}

func TestValidate3SATGeneralMinimumIsVPlus1(t *testing.T) {
	require.Error(t, Params{V: 5, K: 3, C: 5}.Validate())
	require.NoError(t, Params{V: 5, K: 3, C: 6}.Validate())
}

func TestValidateRejectsBadK(t *testing.T) {
	require.Error(t, Params{V: 4, K: 4, C: 5}.Validate())
}

func TestValidateRejectsClauseCapOverflow(t *testing.T) {
	require.Error(t, Params{V: 10, K: 2, C: 21}.Validate())
}

func TestParseMinunsat(t *testing.T) {
	fs := flag.NewFlagSet("minunsat", flag.ContinueOnError)
	p, err := ParseMinunsat(fs, []string{"-v", "4", "-l", "2", "-c", "6", "--checkpoint"})
	require.NoError(t, err)
	require.Equal(t, 4, p.V)
	require.Equal(t, 2, p.K)
	require.Equal(t, 6, p.C)
	require.True(t, p.Checkpoint)
}

func TestParseMinunsatRejectsBadParams(t *testing.T) {
	fs := flag.NewFlagSet("minunsat", flag.ContinueOnError)
	_, err := ParseMinunsat(fs, []string{"-v", "2", "-l", "2", "-c", "5"})
	require.Error(t, err)
}

func TestProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	p := Params{V: 5, K: 3, C: 11, Checkpoint: true, PrefixDepth: 3}
	require.NoError(t, SaveProfile(path, "big-3sat", p))

	got, err := LoadProfile(path)
	require.NoError(t, err)
	require.Equal(t, p, got)
}
