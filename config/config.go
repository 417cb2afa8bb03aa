// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package config parses and validates the parameters shared by the
// three CLI verbs (spec.md §6): v, k ("l" on the command line), c, and
// the engine-selection flags. Named YAML profiles persist a set of
// defaults across invocations.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigError reports an invalid parameter combination. It is always
// fatal and produces no count (spec.md §7).
type ConfigError struct {
	Kind    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("minunsat: config error (%s): %s", e.Kind, e.Message)
}

// MaxClauseCap is the engine capacity ceiling on c (spec.md §6, §9
// note 5): comfortably under the 31-clause polarity-stride limit, it
// is the binding constraint in practice.
const MaxClauseCap = 20

// Params is the validated (v, k, c) triple plus the engine-selection
// and resumability flags common to every verb.
type Params struct {
	V, K, C     int
	ForceCPU    bool
	Checkpoint  bool
	Benchmark   bool
	PrefixDepth int // 0 means "let the orchestrator pick the default"
}

// Validate checks (v, k, c) against the structural minimums of
// spec.md §6 and §9 note 1: for 2-SAT at v=2 the engine admits only
// c=4; for 2-SAT at v>2 the minimum is c=v+1; for 3-SAT at v=3 the
// minimum is c=8; otherwise the minimum is v+1. c is additionally
// capped at MaxClauseCap.
func (p Params) Validate() error {
	if p.K != 2 && p.K != 3 {
		return &ConfigError{Kind: "l", Message: fmt.Sprintf("l must be 2 or 3, got %d", p.K)}
	}
	if p.V < p.K || p.V > 10 {
		return &ConfigError{Kind: "v", Message: fmt.Sprintf("v must be in [%d,10], got %d", p.K, p.V)}
	}
	if p.C > MaxClauseCap {
		return &ConfigError{Kind: "c", Message: fmt.Sprintf("c=%d exceeds the engine cap of %d", p.C, MaxClauseCap)}
	}

	min := p.V + 1
	switch {
	case p.K == 2 && p.V == 2:
		if p.C != 4 {
			return &ConfigError{Kind: "c", Message: "2-SAT at v=2 admits only c=4"}
		}
		return nil
	case p.K == 3 && p.V == 3:
		min = 8
	}
	if p.C < min {
		return &ConfigError{Kind: "c", Message: fmt.Sprintf("c=%d is below the structural minimum %d for v=%d l=%d", p.C, min, p.V, p.K)}
	}
	return nil
}

// Profile is a named, YAML-persisted set of CLI parameter defaults
// (spec.md GLOSSARY).
type Profile struct {
	Name        string `yaml:"name"`
	V           int    `yaml:"v"`
	K           int    `yaml:"l"`
	C           int    `yaml:"c"`
	ForceCPU    bool   `yaml:"cpu"`
	Checkpoint  bool   `yaml:"checkpoint"`
	PrefixDepth int    `yaml:"prefix_depth"`
}

// LoadProfile reads a YAML profile file and returns the Params it
// describes.
func LoadProfile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: read profile: %w", err)
	}
	var prof Profile
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return Params{}, fmt.Errorf("config: parse profile: %w", err)
	}
	return Params{
		V: prof.V, K: prof.K, C: prof.C,
		ForceCPU: prof.ForceCPU, Checkpoint: prof.Checkpoint, PrefixDepth: prof.PrefixDepth,
	}, nil
}

// SaveProfile persists params under name to path.
func SaveProfile(path, name string, p Params) error {
	prof := Profile{
		Name: name, V: p.V, K: p.K, C: p.C,
		ForceCPU: p.ForceCPU, Checkpoint: p.Checkpoint, PrefixDepth: p.PrefixDepth,
	}
	data, err := yaml.Marshal(prof)
	if err != nil {
		return fmt.Errorf("config: marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write profile: %w", err)
	}
	return nil
}

// ParseMinunsat parses the flags of the `minunsat` verb (spec.md §6).
func ParseMinunsat(fs *flag.FlagSet, args []string) (Params, error) {
	var p Params
	var l int
	fs.IntVar(&p.V, "v", 0, "number of variables")
	fs.IntVar(&l, "l", 2, "literals per clause (2 or 3)")
	fs.IntVar(&p.C, "c", 0, "number of clauses")
	fs.BoolVar(&p.ForceCPU, "cpu", false, "force the CPU/many-vars engine")
	fs.BoolVar(&p.Checkpoint, "checkpoint", false, "enable resumable checkpoints")
	fs.IntVar(&p.PrefixDepth, "p", 0, "force a V3 prefix depth (2 or 3)")
	fs.BoolVar(&p.Benchmark, "benchmark", false, "print timing alongside the result")
	if err := fs.Parse(args); err != nil {
		return Params{}, err
	}
	p.K = l
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// FormulaParams is the `formula` verb's parameter set: the 2-SAT
// closed-form evaluator takes no l (it is always k=2) and no
// engine-selection flags.
type FormulaParams struct {
	V, C     int
	Diagonal bool // -d, print the diagonal d = c - v alongside the count
	Verify   bool
}

// ParseFormula parses the flags of the `formula` verb (spec.md §6).
func ParseFormula(fs *flag.FlagSet, args []string) (FormulaParams, error) {
	var p FormulaParams
	fs.IntVar(&p.V, "v", 0, "number of variables")
	fs.IntVar(&p.C, "c", 0, "number of clauses")
	fs.BoolVar(&p.Diagonal, "d", false, "print the diagonal d = c - v")
	fs.BoolVar(&p.Verify, "verify", false, "cross-check against the known-value table")
	if err := fs.Parse(args); err != nil {
		return FormulaParams{}, err
	}
	if p.V < 2 {
		return FormulaParams{}, &ConfigError{Kind: "v", Message: fmt.Sprintf("v must be >= 2, got %d", p.V)}
	}
	if p.C < p.V+1 {
		return FormulaParams{}, &ConfigError{Kind: "c", Message: fmt.Sprintf("c=%d is below the structural minimum %d", p.C, p.V+1)}
	}
	return p, nil
}

// UnsatParams is the `unsat` verb's parameter set: it shares (v, l, c)
// and --cpu with minunsat, and additionally supports CSV output.
type UnsatParams struct {
	V, K, C  int
	ForceCPU bool
	CSVPath  string
	Verify   bool
}

// ParseUnsat parses the flags of the `unsat` verb (spec.md §6).
func ParseUnsat(fs *flag.FlagSet, args []string) (UnsatParams, error) {
	var p UnsatParams
	var l int
	fs.IntVar(&p.V, "v", 0, "number of variables")
	fs.IntVar(&l, "l", 2, "literals per clause (2 or 3)")
	fs.IntVar(&p.C, "c", 0, "number of clauses")
	fs.BoolVar(&p.ForceCPU, "cpu", false, "force the CPU/many-vars engine")
	fs.StringVar(&p.CSVPath, "o", "", "append a CSV row to this path")
	fs.BoolVar(&p.Verify, "verify", false, "cross-check against the brute-force reference")
	if err := fs.Parse(args); err != nil {
		return UnsatParams{}, err
	}
	p.K = l
	full := Params{V: p.V, K: p.K, C: p.C}
	if err := full.Validate(); err != nil {
		return UnsatParams{}, err
	}
	return p, nil
}
