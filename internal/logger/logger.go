// Package logger configures the zerolog logger used for diagnostics.
// Command results go to stdout; everything here goes to stderr.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level. Unknown levels fall
// back to info. Pretty output is meant for terminals; JSON mode keeps
// diagnostics machine-readable.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Default is New on stderr.
func Default(level string, pretty bool) zerolog.Logger {
	return New(os.Stderr, level, pretty)
}
