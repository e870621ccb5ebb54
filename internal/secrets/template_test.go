package secrets

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimvekemans/dbt-academy/internal/config"
	"github.com/jimvekemans/dbt-academy/internal/logging"
)

func storeWith(t *testing.T, values map[string]string) *Store {
	t.Helper()
	s := NewStore(t.TempDir(), WithEnvLookup(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}))
	return s
}

func TestRender(t *testing.T) {
	store := storeWith(t, map[string]string{"DBT_HOST": "db.example.com", "DBT_PORT": "3306"})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain string untouched", input: "localhost", want: "localhost"},
		{name: "single placeholder", input: "{{ env_var('DBT_HOST') }}", want: "db.example.com"},
		{name: "double quotes", input: `{{ env_var("DBT_HOST") }}`, want: "db.example.com"},
		{name: "embedded placeholder", input: "{{ env_var('DBT_HOST') }}:{{ env_var('DBT_PORT') }}", want: "db.example.com:3306"},
		{name: "undefined with default", input: "{{ env_var('NOPE', 'fallback') }}", want: "fallback"},
		{name: "undefined without default", input: "{{ env_var('NOPE') }}", want: ""},
		{name: "tight spacing", input: "{{env_var('DBT_HOST')}}", want: "db.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Render(tt.input))
		})
	}
}

func TestRenderTemplateError(t *testing.T) {
	mem := logging.NewMemoryHandler()
	store := NewStore(t.TempDir(), WithLogger(slog.New(mem)), WithEnvLookup(noEnv))

	// Unsupported expressions log an error and return the input unchanged.
	input := "{{ var('something') }}"
	assert.Equal(t, input, store.Render(input))

	entries := mem.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "ERROR", entries[len(entries)-1].Level)
}

func TestRenderMixedErrorReturnsOriginal(t *testing.T) {
	store := storeWith(t, map[string]string{"DBT_HOST": "db.example.com"})

	// One good placeholder plus one bad one: the whole input comes back.
	input := "{{ env_var('DBT_HOST') }}/{{ bogus }}"
	assert.Equal(t, input, store.Render(input))
}

func TestParseTarget(t *testing.T) {
	store := storeWith(t, map[string]string{"DBT_PASS": "hunter2"})

	details := store.ParseTarget(config.Output{
		"type": "singlestore",
		"host": "localhost",
		"port": 3306,
		"pass": "{{ env_var('DBT_PASS') }}",
	})

	assert.Equal(t, map[string]string{
		"type": "singlestore",
		"host": "localhost",
		"port": "3306",
		"pass": "hunter2",
	}, details)
}
