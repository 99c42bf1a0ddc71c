// Package logging builds the slog logger the client installs as default.
//
// Settings come from the logging section of settings.yaml:
//
//	logging:
//	  level: "info"     # debug, info, warn, error
//	  format: "text"    # text, json
//	  output: "stderr"  # stdout, stderr
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/micro-nova/amplipi-prefs/internal/config"
)

// New returns a logger for cfg.
func New(cfg config.LoggingSettings) *slog.Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}
	return newLogger(cfg, output)
}

func newLogger(cfg config.LoggingSettings, output io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
