// Package logging builds the zerolog loggers shared by the demo host.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level   string `mapstructure:"level"`    // debug, info, warn, error
	Console bool   `mapstructure:"console"`  // human-readable output instead of JSON
	File    string `mapstructure:"file"`     // optional log file, appended to
	NoColor bool   `mapstructure:"no_color"` // disable ANSI colors in console output
}

// DefaultConfig returns the defaults used when no config file is present
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Console: true,
	}
}

// ParseLevel maps a level name onto zerolog's levels
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
}

// New creates a logger writing to out (stderr when nil) and, if configured,
// to a log file. The returned closer releases the file.
func New(cfg Config, out io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor,
		}
	}

	var closer io.Closer = nopCloser{}
	writer := out
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = file
		writer = zerolog.MultiLevelWriter(out, file)
	}

	logger := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("app", "crafthouse").
		Logger()
	return logger, closer, nil
}

// Component returns a child logger tagged with the component name
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
