// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// SchemaTableName identifies an exposed table. Both parts are compared as-is,
// so identifiers are case-sensitive.
type SchemaTableName struct {
	Schema string `json:"schema" yaml:"schema"`
	Table  string `json:"table" yaml:"table"`
}

// NewSchemaTableName returns the qualified name for schema and table.
func NewSchemaTableName(schema, table string) SchemaTableName {
	return SchemaTableName{Schema: schema, Table: table}
}

// String renders the name as schema.table.
func (n SchemaTableName) String() string {
	return n.Schema + "." + n.Table
}
