package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Entry is a single recorded log entry.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// MemoryHandler is an slog.Handler that keeps every record in memory.
// It backs the per-run JSON log dump written when the CLI exits.
type MemoryHandler struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryHandler returns an empty MemoryHandler.
func NewMemoryHandler() *MemoryHandler {
	return &MemoryHandler{}
}

// Enabled reports true for all levels; filtering is the text handler's job.
func (m *MemoryHandler) Enabled(context.Context, slog.Level) bool { return true }

// Handle records the entry.
func (m *MemoryHandler) Handle(_ context.Context, r slog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		Time:    r.Time,
		Level:   r.Level.String(),
		Message: r.Message,
	})
	return nil
}

// WithAttrs returns the handler unchanged; recorded entries keep only the
// level and message, matching the saved log format.
func (m *MemoryHandler) WithAttrs([]slog.Attr) slog.Handler { return m }

// WithGroup returns the handler unchanged.
func (m *MemoryHandler) WithGroup(string) slog.Handler { return m }

// Entries returns a copy of the recorded entries.
func (m *MemoryHandler) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// SaveJSON writes the recorded entries to path as indented JSON.
func (m *MemoryHandler) SaveJSON(path string) error {
	data, err := json.MarshalIndent(m.Entries(), "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
