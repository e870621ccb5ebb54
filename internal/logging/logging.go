// Package logging provides structured logging for dbt-academy.
//
// Loggers write human-readable output to the console and keep an in-memory
// record of every entry so a run's log can be saved as JSON afterwards.
package logging

import (
	"context"
	"io"
	"log/slog"
)

// New returns a logger that writes text output to w and records every entry
// in mem. If mem is nil, only the text handler is used.
func New(w io.Writer, verbose bool, mem *MemoryHandler) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if mem == nil {
		return slog.New(text)
	}
	return slog.New(teeHandler{text, mem})
}

// Discard returns a logger that drops everything. Used as the safe default
// in library constructors.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// teeHandler fans a record out to multiple handlers.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}
