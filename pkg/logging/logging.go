// Package logging wires structured logging for the proof engine using
// zerolog, the same library the wider gnark/BN254 tooling in this family of
// repos depends on directly (rather than the standard library's log
// package).
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// L returns the process-wide logger, configured once on first use.
func L() zerolog.Logger {
	once.Do(func() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Logger()
	})
	return logger
}

// SetLevel adjusts the process-wide log level, e.g. for verbose CLI runs.
func SetLevel(level zerolog.Level) {
	L()
	logger = logger.Level(level)
}
