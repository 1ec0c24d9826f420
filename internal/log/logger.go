// Package log configures the zerolog logger used by the CLI.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for the global logger.
type Config struct {
	Level   string    // "debug", "info", ... (default: info, or $TWCONFIG_LOG_LEVEL)
	Output  io.Writer // default: os.Stderr
	Console bool      // human-readable output instead of JSON lines
}

var (
	mu   sync.Mutex
	base = zerolog.Nop()
)

// Configure replaces the base logger.
func Configure(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	name := cfg.Level
	if name == "" {
		name = os.Getenv("TWCONFIG_LOG_LEVEL")
	}
	if name != "" {
		if parsed, err := zerolog.ParseLevel(name); err == nil {
			level = parsed
		}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()
	return l
}

// Base returns the configured logger; a no-op logger until Configure runs.
func Base() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// WithComponent returns a child logger annotated with the component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
