// Package connection manages database connections for dbt-academy.
//
// It normalizes heterogeneous connection-detail key names to a canonical set,
// builds connections through registered dialects, and executes queries with
// per-session history tracking.
package connection

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// keywordMap maps each canonical connection-detail key to the alternative
// spellings accepted in raw input. The canonical key is always accepted too.
var keywordMap = map[string][]string{
	"type":      {"type", "dbtype", "db_type"},
	"host":      {"host", "server", "hostname", "host_name", "url"},
	"port":      {"port", "portnum", "portnr", "portnumber"},
	"user":      {"user", "username", "user_name", "userid", "user_id"},
	"pass":      {"pass", "password", "pwd", "passwd"},
	"database":  {"database", "dbname", "db_name", "db", "database_name"},
	"schema":    {"schema", "schema_name"},
	"account":   {"account", "user_account", "acc"},
	"warehouse": {"warehouse", "wh"},
	"role":      {"role"},
	"token":     {"token"},
}

// canonicalKey returns the canonical key for an input key, matching
// case-insensitively against the alias table. ok is false for unknown keys.
func canonicalKey(key string) (string, bool) {
	lower := strings.ToLower(key)
	if _, ok := keywordMap[lower]; ok {
		return lower, true
	}
	for canonical, aliases := range keywordMap {
		for _, alias := range aliases {
			if lower == alias {
				return canonical, true
			}
		}
	}
	return "", false
}

// RequiredKeys returns the keys a connection-detail mapping must carry for
// the given database type. Snowflake authenticates by account rather than
// host, so its required set differs.
func RequiredKeys(dbType string) []string {
	if strings.EqualFold(dbType, "snowflake") {
		return []string{"type", "account", "user", "pass", "database", "warehouse"}
	}
	return []string{"type", "host", "user", "pass"}
}

// Normalize maps raw connection details onto the canonical key set.
//
// Keys matching no known alias are retained unchanged and logged as extras.
// When two input aliases target the same canonical key, the last one
// processed wins (map iteration order). Normalize never fails: validation
// problems are logged and the best-effort mapping is returned, so callers
// must inspect the result to detect an unusable configuration.
func Normalize(raw map[string]string, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	details := make(map[string]string, len(raw))
	for key, value := range raw {
		if canonical, ok := canonicalKey(key); ok {
			details[canonical] = value
			continue
		}
		details[key] = value
		logger.Warn(fmt.Sprintf("Extra key %q in connection details.", key))
	}

	validateRequired(details, logger)
	return details
}

// validateRequired logs one error per missing required key plus a summary.
func validateRequired(details map[string]string, logger *slog.Logger) {
	required := RequiredKeys(details["type"])

	var missing []string
	for _, key := range required {
		if _, ok := details[key]; !ok {
			missing = append(missing, key)
			logger.Error(fmt.Sprintf("Invalid config: info for %q not found in connection details.", key))
		}
	}
	if len(missing) > 0 {
		sorted := append([]string(nil), required...)
		sort.Strings(sorted)
		logger.Error(fmt.Sprintf("Invalid connection details provided. Expected keys: %v.", sorted))
	}
}
