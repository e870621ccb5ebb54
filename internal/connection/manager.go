package connection

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jimvekemans/dbt-academy/internal/logging"
	"github.com/jimvekemans/dbt-academy/pkg/dialect"
)

// Manager owns a database connection pool for one target and tracks the
// all-time query history across sessions.
type Manager struct {
	db      *sql.DB
	dialect dialect.Dialect
	details map[string]string
	logger  *slog.Logger

	preRunHooks    string
	postRunHooks   string
	shouldRunHooks bool

	session    *Session
	allHistory []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithRunHooks sets SQL statements executed when a session starts and closes.
// Statements are joined with ";" separators.
func WithRunHooks(pre, post []string) Option {
	return func(m *Manager) {
		m.preRunHooks = joinHooks(pre)
		m.postRunHooks = joinHooks(post)
		m.shouldRunHooks = m.preRunHooks != "" || m.postRunHooks != ""
	}
}

// WithDB injects an already-open database handle. Used by tests.
func WithDB(db *sql.DB) Option {
	return func(m *Manager) { m.db = db }
}

func joinHooks(hooks []string) string {
	var parts []string
	for _, hook := range hooks {
		hook = strings.TrimSpace(hook)
		if hook == "" {
			continue
		}
		if !strings.HasSuffix(hook, ";") {
			hook += ";"
		}
		parts = append(parts, hook)
	}
	return strings.Join(parts, " ")
}

// NewManager normalizes raw connection details, resolves the dialect named
// by the type key, and opens a connection pool via the dialect's DSN.
func NewManager(raw map[string]string, opts ...Option) (*Manager, error) {
	m := &Manager{logger: logging.Discard()}
	for _, opt := range opts {
		opt(m)
	}

	m.details = Normalize(raw, m.logger)

	d, err := dialect.Resolve(m.details["type"])
	if err != nil {
		return nil, err
	}
	m.dialect = d

	if m.db == nil {
		db, err := sql.Open(d.DriverName(), d.DSN(m.details))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s engine: %w", d.Name(), err)
		}
		m.db = db
	}

	m.logger.Debug("created engine", slog.String("dialect", d.Name()), slog.String("locator", d.LocatorString(m.details)))
	return m, nil
}

// Details returns the normalized connection details.
func (m *Manager) Details() map[string]string { return m.details }

// Dialect returns the manager's dialect.
func (m *Manager) Dialect() dialect.Dialect { return m.dialect }

// AllHistory returns every statement executed in closed sessions, in order.
func (m *Manager) AllHistory() []string {
	out := make([]string, len(m.allHistory))
	copy(out, m.allHistory)
	return out
}

// StartSession opens a new scoped session, closing the current one first if
// it exists. Pre-run hooks execute against the fresh session.
func (m *Manager) StartSession(ctx context.Context) (*Session, error) {
	if m.session != nil {
		if err := m.session.Close(ctx); err != nil {
			return nil, err
		}
	}

	conn, err := m.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s := &Session{mgr: m, conn: conn}
	m.session = s
	m.logger.Debug("started a new database session")

	if m.shouldRunHooks && m.preRunHooks != "" {
		if _, err := s.Execute(ctx, m.preRunHooks, true); err != nil {
			return nil, err
		}
		m.logger.Debug("executed pre-run hooks for new session")
	}
	return s, nil
}

// currentSession returns the active session, starting one if needed.
func (m *Manager) currentSession(ctx context.Context) (*Session, error) {
	if m.session != nil && !m.session.closed {
		return m.session, nil
	}
	return m.StartSession(ctx)
}

// Execute runs one statement against the current session, starting a session
// if none is active. See Session.Execute for error semantics.
func (m *Manager) Execute(ctx context.Context, query string, continueOnError bool) (*Result, error) {
	s, err := m.currentSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, query, continueOnError)
}

// BatchExecute opens exactly one session, executes the statements in order
// against it, and always closes the session before returning. Results are
// keyed by statement text; duplicate statements overwrite earlier results.
func (m *Manager) BatchExecute(ctx context.Context, queries []string, continueOnError bool) (map[string]*Result, error) {
	s, err := m.StartSession(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]*Result, len(queries))
	var execErr error
	for _, query := range queries {
		result, err := s.Execute(ctx, query, continueOnError)
		if err != nil {
			execErr = err
			break
		}
		results[query] = result
	}

	if err := s.Close(ctx); err != nil && execErr == nil {
		execErr = err
	}
	return results, execErr
}

// Close closes the active session (flushing its history) and the pool.
func (m *Manager) Close(ctx context.Context) error {
	if m.session != nil {
		if err := m.session.Close(ctx); err != nil {
			return err
		}
	}
	if m.db != nil {
		m.logger.Debug("closing database connection")
		return m.db.Close()
	}
	return nil
}

// Session is a scoped database session: one dedicated connection and its
// statement history. The history is flushed into the manager's all-time
// history when the session closes, not per call.
type Session struct {
	mgr     *Manager
	conn    *sql.Conn
	history []string
	closed  bool
}

// History returns the statements executed so far in this session.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Execute runs one statement in its own transaction.
//
// On success the transaction commits, the statement is appended to the
// session history, and the tabular result is returned. On failure the
// transaction rolls back and the failing statement is logged; with
// continueOnError the error text is returned inside a Result, otherwise the
// error propagates and the session remains usable.
func (s *Session) Execute(ctx context.Context, query string, continueOnError bool) (*Result, error) {
	fail := func(err error) (*Result, error) {
		fmt.Println(logging.Box("FAILED QUERY", query))
		if continueOnError {
			s.mgr.logger.Warn(fmt.Sprintf("Error executing query:\n%v", err))
			return &Result{Err: err.Error()}, nil
		}
		s.mgr.logger.Error(fmt.Sprintf("Error executing query:\n%v", err))
		return nil, err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fail(err)
	}

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return fail(err)
	}

	result, err := collectRows(rows)
	_ = rows.Close()
	if err != nil {
		_ = tx.Rollback()
		return fail(err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fail(err)
	}

	s.mgr.logger.Debug(fmt.Sprintf("Executed query: %s", query))
	s.history = append(s.history, query)
	return result, nil
}

// Close runs post-run hooks, flushes the session history into the manager's
// all-time history, and releases the connection. Safe to call twice.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}

	if s.mgr.shouldRunHooks && s.mgr.postRunHooks != "" {
		_, _ = s.Execute(ctx, s.mgr.postRunHooks, true)
	}

	s.closed = true
	s.mgr.allHistory = append(s.mgr.allHistory, s.history...)
	if s.mgr.session == s {
		s.mgr.session = nil
	}
	s.mgr.logger.Debug("closed and removed current database session")
	return s.conn.Close()
}
