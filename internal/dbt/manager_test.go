package dbt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimvekemans/dbt-academy/internal/connection"
	"github.com/jimvekemans/dbt-academy/internal/testutil"
)

const projectYAML = `name: academy
version: "1.0.0"
profile: academy
model-paths: ["models"]
`

const profilesYAML = `academy:
  target: dev
  outputs:
    dev:
      type: singlestore
      host: localhost
      port: 3306
    prod:
      type: singlestore
      host: prod.example.com
      port: 3306
`

func writeProject(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "dbt_project.yml"), []byte(projectYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(home, "profiles.yml"), []byte(profilesYAML), 0o644))
	return home
}

func TestNewManagerDefaultTarget(t *testing.T) {
	home := writeProject(t)

	mgr, err := NewManager(home, "", testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "academy", mgr.Project.Name)
	assert.Equal(t, "dev", mgr.TargetName)
	assert.Equal(t, "localhost", mgr.TargetOutput["host"])
}

func TestNewManagerTargetOverride(t *testing.T) {
	home := writeProject(t)

	mgr, err := NewManager(home, "prod", testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "prod", mgr.TargetName)
	assert.Equal(t, "prod.example.com", mgr.TargetOutput["host"])
}

func TestNewManagerMissingDescriptors(t *testing.T) {
	_, err := NewManager(t.TempDir(), "", testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find metadata file")
}

func TestNewManagerUnknownTarget(t *testing.T) {
	home := writeProject(t)

	_, err := NewManager(home, "staging", testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `target "staging" not found`)
}

func TestSourcesDir(t *testing.T) {
	home := writeProject(t)

	mgr, err := NewManager(home, "", testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models", "sources"), mgr.SourcesDir())
}

func TestRefreshSourceWritesDefinitionFile(t *testing.T) {
	home := writeProject(t)

	mgr, err := NewManager(home, "", testutil.NewTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(mgr.SourcesDir(), 0o750))

	result := &connection.Result{
		Columns: []string{"schema_name", "table_name", "column_name"},
		Rows: [][]any{
			{"analytics", "orders", "order_id"},
		},
	}
	require.NoError(t, mgr.RefreshSource(result, "warehouse"))

	data, err := os.ReadFile(filepath.Join(mgr.SourcesDir(), "sources_warehouse.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: warehouse")
	assert.Contains(t, string(data), "name: orders")
}
