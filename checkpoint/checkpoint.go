// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package checkpoint persists and restores resumable progress for a
// long-running enumeration (spec.md §4.8): one JSON file per (v, k, c)
// triple, written atomically and integrity-checked with a blake2b
// checksum so a partially written or corrupted file is never loaded as
// valid.
package checkpoint

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Record is the persisted state of one enumeration run.
type Record struct {
	V              int       `json:"v"`
	K              int       `json:"l"`
	C              int       `json:"c"`
	ProcessedUnits uint64    `json:"processed_units"`
	PartialCount   int64     `json:"partial_count"`
	ElapsedMs      int64     `json:"elapsed_ms_before_checkpoint"`
	LastUpdated    time.Time `json:"last_updated"`
	Checksum       string    `json:"checksum"`
}

// Store manages checkpoint files under a single directory.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("checkpoint: create dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path(v, k, c int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("checkpoint_v%d_l%d_c%d.json", v, k, c))
}

// checksum computes the blake2b-256 digest over rec with Checksum and
// LastUpdated cleared, so the checksum covers only the data that
// defines progress, not the write timestamp.
func checksum(rec Record) (string, error) {
	rec.Checksum = ""
	rec.LastUpdated = time.Time{}
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Save atomically writes rec: it marshals to a temp file in the same
// directory, then renames over the final path, so a crash mid-write
// never leaves a partial checkpoint at the canonical name.
func (s *Store) Save(rec Record) error {
	rec.LastUpdated = time.Now()
	sum, err := checksum(rec)
	if err != nil {
		return fmt.Errorf("checkpoint: compute checksum: %w", err)
	}
	rec.Checksum = sum

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint: marshal: %w", err)
	}

	final := s.path(rec.V, rec.K, rec.C)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("checkpoint: write temp file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("checkpoint: rename into place: %w", err)
	}
	return nil
}

// Load reads the checkpoint for (v, k, c). The second return value is
// false whenever the checkpoint should be treated as absent: the file
// does not exist, its checksum does not match its payload, or its
// ProcessedUnits is 0 or >= total (spec.md §4.8).
func (s *Store) Load(v, k, c int, total uint64) (*Record, bool, error) {
	data, err := os.ReadFile(s.path(v, k, c))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("checkpoint: read: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, nil
	}

	want, err := checksum(rec)
	if err != nil {
		return nil, false, nil
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(rec.Checksum)) != 1 {
		return nil, false, nil
	}

	if rec.V != v || rec.K != k || rec.C != c {
		return nil, false, nil
	}
	if rec.ProcessedUnits == 0 || rec.ProcessedUnits >= total {
		return nil, false, nil
	}

	return &rec, true, nil
}

// Delete removes the checkpoint for (v, k, c), if any. A missing file
// is not an error: deleting an already-absent checkpoint on a
// successful run's cleanup path is the common case.
func (s *Store) Delete(v, k, c int) error {
	err := os.Remove(s.path(v, k, c))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("checkpoint: delete: %w", err)
	}
	return nil
}
