package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the logger for one run. Level takes the slog names
// (debug, info, warn, error, case-insensitive, with optional offsets such as
// "info+2") and format is "text" or "json"; an empty value picks the default
// warn level or text format. Debug logs carry source positions.
func NewLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if level == "" {
		lvl = slog.LevelWarn
	} else if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: want debug, info, warn or error", level)
	}
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}
}
