package connection

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Result is a tabular query result: ordered columns, ordered rows, values
// type-erased. When a statement fails under continue-on-error, Err carries
// the error text and the table is empty.
type Result struct {
	Columns []string
	Rows    [][]any
	Err     string
}

// collectRows drains sql.Rows into a Result. []byte values are converted to
// strings for readability, matching how results are rendered.
func collectRows(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		for i, val := range values {
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HasColumn reports whether the result carries the named column.
func (r *Result) HasColumn(name string) bool {
	return r.columnIndex(name) >= 0
}

// Value returns the value at (row, column name), or nil when the column is
// absent.
func (r *Result) Value(row int, column string) any {
	idx := r.columnIndex(column)
	if idx < 0 || row < 0 || row >= len(r.Rows) {
		return nil
	}
	return r.Rows[row][idx]
}

// StringValue returns the value at (row, column name) as a string, with nil
// rendered as the empty string.
func (r *Result) StringValue(row int, column string) string {
	v := r.Value(row, column)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IntValue returns the value at (row, column name) coerced to an int.
// Non-numeric values coerce to 0.
func (r *Result) IntValue(row int, column string) int {
	switch v := r.Value(row, column).(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func (r *Result) columnIndex(name string) int {
	for i, col := range r.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
