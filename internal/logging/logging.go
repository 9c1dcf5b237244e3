// SPDX-License-Identifier: MPL-2.0

// Package logging sets up the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every diagnostic line.
const Prefix = "xcrun"

// New returns a slog logger backed by a charmbracelet/log handler writing
// to w. Verbose enables debug output; otherwise only warnings and errors
// are shown.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
	return slog.New(handler)
}

// Setup installs New(w, verbose) as the default slog logger.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	logger := New(w, verbose)
	slog.SetDefault(logger)
	return logger
}
