package description

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dbsmedya/topictables/internal/types"
)

// ParseTableName splits "schema.table" into its parts. Names with no dot,
// more than one dot or an empty part are rejected.
func ParseTableName(name string) (types.SchemaTableName, error) {
	if name == "" {
		return types.SchemaTableName{}, fmt.Errorf("table name is empty")
	}
	parts := strings.Split(name, ".")
	if len(parts) != 2 {
		return types.SchemaTableName{}, fmt.Errorf("invalid table name %q: expected schema.table", name)
	}
	if parts[0] == "" || parts[1] == "" {
		return types.SchemaTableName{}, fmt.Errorf("invalid table name %q: empty schema or table", name)
	}
	return types.NewSchemaTableName(parts[0], parts[1]), nil
}

// QualifyTableName resolves a configured name. Anything ParseTableName
// rejects is taken whole as a table in defaultSchema.
func QualifyTableName(name, defaultSchema string) types.SchemaTableName {
	qualified, err := ParseTableName(name)
	if err != nil {
		return types.NewSchemaTableName(defaultSchema, name)
	}
	return qualified
}

func sortedNames[V any](tables map[types.SchemaTableName]V) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name.String())
	}
	sort.Strings(names)
	return names
}
