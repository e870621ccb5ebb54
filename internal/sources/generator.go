package sources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jimvekemans/dbt-academy/internal/connection"
)

// requiredColumns are the metadata columns a result must carry to be turned
// into a source definition.
var requiredColumns = []string{"schema_name", "table_name", "column_name"}

// Generate converts a column-metadata result into a source-definition
// document and writes it to <sourcesDir>/sources_<sourceName>.yml,
// overwriting any existing file. The input rows are expected to be ordered
// by schema, table, column by the upstream query.
//
// Validation failures and write failures return an error with no partial
// file written. There are no retries.
func Generate(result *connection.Result, sourceName, sourcesDir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := validate(result); err != nil {
		logger.Error(err.Error())
		return err
	}

	logger.Info(fmt.Sprintf("Creating sources YAML file for source %s", sourceName))

	doc := Document{
		Version: 2,
		Sources: []Source{{
			Name:     sourceName,
			Database: sourceName,
			Schema:   sourceName,
			Tables:   buildTables(result),
		}},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize source definition: %w", err)
	}

	path := filepath.Join(sourcesDir, fmt.Sprintf("sources_%s.yml", sourceName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// validate checks that the required metadata columns are present.
func validate(result *connection.Result) error {
	if result == nil {
		return fmt.Errorf("invalid source information provided")
	}
	for _, col := range requiredColumns {
		if !result.HasColumn(col) {
			return fmt.Errorf("invalid source information provided")
		}
	}
	return nil
}

// buildTables groups per-column descriptors by table name, preserving the
// first-seen order of distinct tables.
func buildTables(result *connection.Result) []Table {
	byTable := make(map[string][]Column)
	var order []string

	for i := range result.Rows {
		tableName := result.StringValue(i, "table_name")
		if _, seen := byTable[tableName]; !seen {
			order = append(order, tableName)
		}
		byTable[tableName] = append(byTable[tableName], buildColumn(result, i))
	}

	tables := make([]Table, 0, len(order))
	for _, name := range order {
		tables = append(tables, Table{Name: name, Columns: byTable[name]})
	}
	return tables
}

// buildColumn builds one column descriptor from a metadata row.
func buildColumn(result *connection.Result, row int) Column {
	col := Column{Name: result.StringValue(row, "column_name")}

	if result.HasColumn("column_description") {
		if desc := result.StringValue(row, "column_description"); desc != "" {
			col.Description = desc
		}
	}
	if result.HasColumn("data_type") {
		if dt := result.StringValue(row, "data_type"); dt != "" {
			col.DataType = dt
		}
	}
	// The pii flag is attached whenever a non-empty meta value exists,
	// regardless of what that value says.
	if result.HasColumn("meta") {
		if m := result.StringValue(row, "meta"); m != "" {
			col.Meta = &Meta{ContainsPII: result.Value(row, "column_contains_pii")}
		}
	}

	// is_nullable==1 maps to a not_null test tag.
	if result.IntValue(row, "is_nullable") == 1 {
		col.Tests = append(col.Tests, "not_null")
	}
	if result.IntValue(row, "is_unique") == 1 {
		col.Tests = append(col.Tests, "unique")
	}
	return col
}
