// Copyright (c) 2026, MinUnsat Contributors
// SPDX-License-Identifier: BSD-3-Clause

// Package msatlog sets up the zerolog logger shared by the CLI verbs
// and the orchestrator: console-friendly output or structured JSON, as
// the caller selects, with the level controlled by the caller.
package msatlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger writing to w. pretty selects zerolog's
// ConsoleWriter (for an interactive terminal); when false, output is
// newline-delimited JSON suitable for log aggregation.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Default builds a pretty logger on stderr at info level, the logger
// the CLI verbs and the orchestrator use when none is supplied.
func Default() zerolog.Logger {
	return New(os.Stderr, zerolog.InfoLevel, true)
}
