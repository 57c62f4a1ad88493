// Package logging builds the hclog loggers used across foldertint.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel is used when nothing else selects a level.
const DefaultLevel = hclog.Warn

// Options controls logger construction.
type Options struct {
	// Name is the root logger name.
	Name string
	// Level is a level name ("trace", "debug", "info", "warn", "error", "off").
	// Empty or unrecognised values use DefaultLevel.
	Level string
	// Verbose forces debug level.
	Verbose bool
	// Quiet forces error level. Verbose wins if both are set.
	Quiet bool
	// JSON switches to JSON output, which go-plugin hosts parse natively.
	JSON bool
	// Output defaults to stderr.
	Output io.Writer
}

// New creates a logger from opts.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      ResolveLevel(opts),
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// ResolveLevel picks the effective level for opts.
func ResolveLevel(opts Options) hclog.Level {
	switch {
	case opts.Verbose:
		return hclog.Debug
	case opts.Quiet:
		return hclog.Error
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		return DefaultLevel
	}
	return level
}
