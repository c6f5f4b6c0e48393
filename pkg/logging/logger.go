// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default for the CLI).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stdout).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration. The collector is an
// interactive one-shot tool, so it defaults to timestamped console lines on
// stdout rather than JSON on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: true,
		Output: os.Stdout,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var output io.Writer = cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cursor advances during pagination
//   - Cache hits for individual pages
//
// Info: Normal operation events
//   - Per-source fetch completion
//   - Per-file summary lines
//   - Run summary
//
// Warn: Warning conditions that don't prevent operation
//   - Retry attempts
//   - Cache errors (fallback to direct fetch)
//   - Corrupt or unreadable existing snapshots (run starts fresh)
//   - A source exhausting its retries (partial results kept)
//
// Error: Error conditions requiring attention
//   - Failed requests (after retries)
//   - Snapshot write failures
//
// Context Fields:
//   - source: configured source name
//   - file: output file path
//   - endpoint: upstream URL path
//   - cursor: pagination cursor
//   - attempt: retry attempt number
//   - error_class: failure classification (network, http, parse)
//   - new_items / duplicates / total_items: per-run counts
