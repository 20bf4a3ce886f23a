// Package logging configures the global zerolog logger and hands out
// component-scoped loggers to the rest of the tool.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger for console output on stderr.
// Verbosity raises the level from the default: 0 = info, 1 = debug,
// 2+ = trace. Quiet wins over verbosity and only lets errors through.
func Setup(verbosity int, quiet bool) {
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbosity <= 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// Logger returns a logger tagged with the component that owns it, so log
// lines can be traced back to the subsystem that emitted them.
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
