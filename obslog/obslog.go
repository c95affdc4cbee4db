package obslog

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler Configure installs.
type Format string

const (
	JSON Format = "json"
	Text Format = "text"
)

// Configure installs a process-wide slog logger at level, writing to output
// (os.Stderr if nil) in the given format. Unknown formats fall back to Text.
func Configure(level slog.Level, format Format, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a config/flag string onto a slog.Level, defaulting to Info
// for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat maps a config/flag string onto a Format, defaulting to Text.
func ParseFormat(s string) Format {
	if s == string(JSON) {
		return JSON
	}
	return Text
}
