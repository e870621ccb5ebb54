// Package secrets gathers project secrets and renders templated profile
// values.
//
// Secrets live in an explicit Store rather than the process environment;
// the environment is only touched at two boundaries: reading real variables
// as a fallback lookup, and exporting gathered secrets for child processes.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotenvPath is the project-relative location of the dotenv file.
var DotenvPath = filepath.Join(".devcontainer", ".env")

// Store holds gathered secrets for one project.
type Store struct {
	projectHome string
	values      map[string]string
	lookup      func(string) (string, bool)
	logger      *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithEnvLookup replaces the environment-variable fallback lookup.
// Used by tests to avoid touching the real environment.
func WithEnvLookup(lookup func(string) (string, bool)) StoreOption {
	return func(s *Store) { s.lookup = lookup }
}

// NewStore creates a Store for the given project home.
func NewStore(projectHome string, opts ...StoreOption) *Store {
	s := &Store{
		projectHome: projectHome,
		values:      make(map[string]string),
		lookup:      os.LookupEnv,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("secret store initialized")
	return s
}

// LoadDotenv reads the project's .devcontainer/.env file into the store.
// A missing file is not an error; it returns an empty map.
func (s *Store) LoadDotenv() (map[string]string, error) {
	path := filepath.Join(s.projectHome, DotenvPath)
	if _, err := os.Stat(path); err != nil {
		return map[string]string{}, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	for key, value := range vars {
		s.values[key] = value
	}
	if len(vars) > 0 {
		s.logger.Info(fmt.Sprintf("Loaded %d variables from %s.", len(vars), path))
	}
	return vars, nil
}

// Gather loads the dotenv file and overlays additional secrets on top.
// Additional secrets take precedence over dotenv values.
func (s *Store) Gather(additional map[string]string) (map[string]string, error) {
	if _, err := s.LoadDotenv(); err != nil {
		return nil, err
	}
	for key, value := range additional {
		s.values[key] = value
	}
	s.logger.Info("All secrets gathered.")
	return s.All(), nil
}

// Get returns the value for a key: gathered secrets first, then the
// environment fallback.
func (s *Store) Get(key string) (string, bool) {
	if v, ok := s.values[key]; ok {
		return v, true
	}
	return s.lookup(key)
}

// All returns a copy of the gathered secrets.
func (s *Store) All() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Export pushes all gathered secrets into the process environment so child
// processes (the dbt tool) can see them.
func (s *Store) Export() error {
	for key, value := range s.values {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to export secret %s: %w", key, err)
		}
	}
	s.logger.Debug("exported gathered secrets to process environment")
	return nil
}
