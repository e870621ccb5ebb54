package connection

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimvekemans/dbt-academy/internal/testutil"

	// Register the SingleStore dialect for manager construction.
	_ "github.com/jimvekemans/dbt-academy/pkg/dialects/singlestore"
)

func rawDetails() map[string]string {
	return map[string]string{
		"type":     "singlestore",
		"host":     "localhost",
		"port":     "3306",
		"user":     "u",
		"pass":     "p",
		"database": "d",
	}
}

func newMockManager(t *testing.T, opts ...Option) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	opts = append(opts, WithDB(db), WithLogger(testutil.NewTestLogger(t)))
	m, err := NewManager(rawDetails(), opts...)
	require.NoError(t, err)
	return m, mock
}

func TestNewManagerUnknownDialect(t *testing.T) {
	details := rawDetails()
	details["type"] = "oracle"

	_, err := NewManager(details)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
}

func TestExecuteSuccess(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(
		sqlmock.NewRows([]string{"one"}).AddRow(int64(1)))
	mock.ExpectCommit()
	mock.ExpectClose()

	result, err := m.Execute(ctx, "SELECT 1", true)
	require.NoError(t, err)
	assert.Empty(t, result.Err)
	assert.Equal(t, []string{"one"}, result.Columns)
	require.Len(t, result.Rows, 1)
	assert.EqualValues(t, 1, result.Rows[0][0])

	require.NoError(t, m.Close(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteErrorContinues(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broken").WillReturnError(fmt.Errorf("syntax error"))
	mock.ExpectRollback()

	result, err := m.Execute(ctx, "SELECT broken", true)
	require.NoError(t, err, "continue-on-error must not propagate")
	assert.Contains(t, result.Err, "syntax error")

	// The session stays usable for subsequent statements.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectCommit()

	result, err = m.Execute(ctx, "SELECT 1", true)
	require.NoError(t, err)
	assert.Empty(t, result.Err)
}

func TestExecuteErrorPropagates(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broken").WillReturnError(fmt.Errorf("syntax error"))
	mock.ExpectRollback()

	_, err := m.Execute(ctx, "SELECT broken", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestSessionHistoryFlushedAtClose(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectCommit()

	s, err := m.StartSession(ctx)
	require.NoError(t, err)

	_, err = s.Execute(ctx, "SELECT 1", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"SELECT 1"}, s.History())
	assert.Empty(t, m.AllHistory(), "all-time history fills at close, not per call")

	require.NoError(t, s.Close(ctx))
	assert.Equal(t, []string{"SELECT 1"}, m.AllHistory())

	// Closing twice is safe and does not duplicate history.
	require.NoError(t, s.Close(ctx))
	assert.Equal(t, []string{"SELECT 1"}, m.AllHistory())
}

func TestFailedStatementNotInHistory(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broken").WillReturnError(fmt.Errorf("nope"))
	mock.ExpectRollback()

	s, err := m.StartSession(ctx)
	require.NoError(t, err)

	_, err = s.Execute(ctx, "SELECT broken", true)
	require.NoError(t, err)
	assert.Empty(t, s.History())
}

func TestBatchExecuteOneSession(t *testing.T) {
	m, mock := newMockManager(t)
	ctx := context.Background()

	// Both statements run on the same session; duplicate statement text
	// overwrites its earlier result.
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
		mock.ExpectCommit()
	}

	results, err := m.BatchExecute(ctx, []string{"SELECT 1", "SELECT 1"}, true)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Nil(t, m.session, "session must be closed after batch")
	assert.Equal(t, []string{"SELECT 1", "SELECT 1"}, m.AllHistory())
}

func TestRunHooks(t *testing.T) {
	m, mock := newMockManager(t, WithRunHooks(
		[]string{"SET warmup = 1"},
		[]string{"SET cooldown = 1;"},
	))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SET warmup = 1;").WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectCommit()

	s, err := m.StartSession(ctx)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("SET cooldown = 1;").WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectCommit()

	require.NoError(t, s.Close(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
