// Package logging configures the plugin's zerolog output. Hook stdout is
// the wire protocol, so logs go to a file (or stderr as a fallback).
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Service tags every log entry with the emitting component.
const Service = "opencode-ddev"

// New returns a logger writing to path, creating parent directories as
// needed. An empty path or an unwritable file falls back to stderr.
func New(path string, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var w io.Writer = os.Stderr
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = f
			}
		}
	}

	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", Service).
		Logger()
}

// DefaultLogPath returns the default log file location under the user
// config dir, or "" when it cannot be resolved.
func DefaultLogPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "opencode-ddev", "plugin.log")
}
