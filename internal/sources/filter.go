package sources

import (
	"strings"

	"github.com/jimvekemans/dbt-academy/internal/connection"
)

// FilterTables returns a copy of the result restricted to rows whose
// table_name matches one of names (case-insensitive). An empty names list
// returns the result unchanged.
func FilterTables(result *connection.Result, names []string) *connection.Result {
	if result == nil || len(names) == 0 {
		return result
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.ToLower(name)] = true
	}

	filtered := &connection.Result{Columns: result.Columns, Err: result.Err}
	for i, row := range result.Rows {
		if wanted[strings.ToLower(result.StringValue(i, "table_name"))] {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered
}
