package testhelpers

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/myrjola/polyglot/internal/logging"
)

// NewLogger creates a new logger with the given log sink such as io.Discard.
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.New(logSink, slog.LevelDebug, false)
}

// NewTestLogger discards the logs unless the tests run in verbose mode.
func NewTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	if testing.Verbose() {
		return NewLogger(os.Stdout)
	}
	return NewLogger(io.Discard)
}
