// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the logger.
type Options struct {
	// Debug enables debug-level output.
	Debug bool
	// Quiet limits output to errors. Debug wins when both are set.
	Quiet bool
	// JSON switches from the console format to one JSON object per line.
	JSON bool
	// Output defaults to os.Stderr; stdout carries documents.
	Output io.Writer
}

// Level returns the level selected by o.
func (o Options) Level() zerolog.Level {
	switch {
	case o.Debug:
		return zerolog.DebugLevel
	case o.Quiet:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init installs the global logger and returns it.
func Init(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stderr}
	}

	zerolog.SetGlobalLevel(opts.Level())
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}
