// Package logger provides a thin wrapper around zerolog.Logger used
// throughout the application for structured JSON logging.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding exposes the full
// zerolog API while leaving room for application helpers.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "server"). Output is written to os.Stdout in JSON format with a
// timestamp on every entry.
func NewLogger(role string) *Logger {
	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
