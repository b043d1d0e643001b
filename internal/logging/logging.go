// Package logging constructs the zerolog loggers used across winkeep.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel is the environment variable controlling verbosity.
const EnvLogLevel = "WINKEEP_LOG_LEVEL"

// New returns a console logger at the given level. Unknown levels fall
// back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// NewFromEnv returns a logger whose level comes from EnvLogLevel.
func NewFromEnv() zerolog.Logger {
	return New(os.Getenv(EnvLogLevel))
}
