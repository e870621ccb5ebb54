package sources

import "fmt"

// metadataQueryTemplate joins column info with constraint info from
// information_schema, one row per (schema, table, column).
const metadataQueryTemplate = `
with column_info as (
	SELECT
        TABLE_SCHEMA as schema_name,
        TABLE_NAME as table_name,
        COLUMN_NAME as column_name,
        COLUMN_TYPE as data_type,
        CASE WHEN IS_NULLABLE = 'YES' THEN TRUE ELSE FALSE END as is_nullable
	FROM
        information_schema.columns
	WHERE TABLE_SCHEMA = '%[1]s'
),

column_constraints as (
	SELECT
        TABLE_SCHEMA as schema_name,
        TABLE_NAME as table_name,
        COLUMN_NAME as column_name,
        CASE WHEN CONSTRAINT_NAME LIKE '%%UNIQUE%%' THEN TRUE ELSE FALSE END as is_unique
	FROM
        information_schema.key_column_usage
	WHERE TABLE_SCHEMA = '%[1]s'
)

SELECT DISTINCT
    ci.schema_name,
    ci.table_name,
    ci.column_name,
    ci.data_type,
    ci.is_nullable,
    cc.is_unique
FROM
    column_info ci
LEFT JOIN column_constraints cc
    ON ci.schema_name = cc.schema_name
    AND ci.table_name = cc.table_name
    AND ci.column_name = cc.column_name
ORDER BY 1, 2, 3;
`

// MetadataQuery returns the column/constraint discovery query for a
// database. Rows come back ordered by schema, table, column, which is the
// order Generate expects.
func MetadataQuery(database string) string {
	return fmt.Sprintf(metadataQueryTemplate, database)
}
