// Package sources generates dbt source-definition files from column
// metadata queried out of a warehouse's information_schema.
package sources

// Document is the top-level structure of a sources_<name>.yml file.
// Field order is the serialization order; keys are never sorted.
type Document struct {
	Version int      `yaml:"version"`
	Sources []Source `yaml:"sources"`
}

// Source describes one external source: a database/schema pair and its
// tables. Generated sources use the source name for all three identifiers.
type Source struct {
	Name     string  `yaml:"name"`
	Database string  `yaml:"database"`
	Schema   string  `yaml:"schema"`
	Tables   []Table `yaml:"tables"`
}

// Table is one source table with its ordered column definitions.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
}

// Column is one column definition. Optional fields are omitted when the
// metadata row carried no value for them.
type Column struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	DataType    string   `yaml:"data_type,omitempty"`
	Meta        *Meta    `yaml:"meta,omitempty"`
	Tests       []string `yaml:"tests,omitempty"`
}

// Meta carries column-level metadata flags.
type Meta struct {
	ContainsPII any `yaml:"contains_pii"`
}
