// Package testutil provides test utilities for structured logging.
package testutil

import (
	"log/slog"
	"testing"

	"github.com/jimvekemans/dbt-academy/internal/logging"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// NewRecordingLogger returns a logger backed by a MemoryHandler so tests can
// assert on emitted entries.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *logging.MemoryHandler) {
	t.Helper()
	mem := logging.NewMemoryHandler()
	return slog.New(mem), mem
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
