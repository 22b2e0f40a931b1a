// Package logging builds the slog loggers used by the CLI and the server.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects level, format and destination.
type Config struct {
	Level  string
	Format string
	Writer io.Writer
	Debug  bool
}

// New returns a logger for cfg. An empty level means info, an empty format
// means text, and a nil writer means stderr. Debug forces the debug level
// and adds source locations.
func New(cfg Config) (logger *slog.Logger, err error) {
	var level slog.Level
	level, err = ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}

	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		logger = slog.New(slog.NewTextHandler(w, opts))
	case FormatJSON:
		logger = slog.New(slog.NewJSONHandler(w, opts))
	default:
		err = errors.Errorf("unknown log format: %s", cfg.Format)
		return logger, err
	}

	return logger, err
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(name string) (level slog.Level, err error) {
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		err = errors.Errorf("unknown log level: %s", name)
	}
	return level, err
}

// Discard returns a logger that drops everything.
func Discard() (logger *slog.Logger) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return logger
}
