package dialect

import (
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Dialect)
)

// Register adds a dialect to the registry.
// Called by dialect implementations in their init() functions.
func Register(name string, d Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = d
}

// Get retrieves a dialect by name (case-insensitive).
func Get(name string) (Dialect, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[strings.ToLower(name)]
	return d, ok
}

// Resolve returns the dialect for name or an UnknownDialectError.
func Resolve(name string) (Dialect, error) {
	if d, ok := Get(name); ok {
		return d, nil
	}
	return nil, &UnknownDialectError{Type: name, Available: List()}
}

// List returns all registered dialect names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a dialect is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}
