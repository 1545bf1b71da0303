// Package supplier exposes resolved topic descriptions to the query engine's
// metadata layer.
package supplier

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/topictables/internal/types"
)

// Supplier answers table lookups for the connector.
type Supplier interface {
	// ListTables returns every table the connector exposes.
	ListTables() []types.SchemaTableName

	// TopicDescription returns the description of a table, if it is exposed.
	TopicDescription(name types.SchemaTableName) (types.TopicDescription, bool)
}

// MapSupplier is a Supplier over a fixed set of descriptions.
// It keeps its own copy of every description, so it is safe for concurrent reads.
type MapSupplier struct {
	tables *orderedmap.OrderedMap[types.SchemaTableName, types.TopicDescription]
}

var _ Supplier = (*MapSupplier)(nil)

// NewMapSupplier copies tables into a new supplier. Listing order follows
// the iteration order of tables.
func NewMapSupplier(tables *orderedmap.OrderedMap[types.SchemaTableName, types.TopicDescription]) *MapSupplier {
	copied := orderedmap.NewOrderedMap[types.SchemaTableName, types.TopicDescription]()
	if tables != nil {
		for el := tables.Front(); el != nil; el = el.Next() {
			copied.Set(el.Key, el.Value.Clone())
		}
	}
	return &MapSupplier{tables: copied}
}

// ListTables returns table names in supplier order.
func (s *MapSupplier) ListTables() []types.SchemaTableName {
	return s.tables.Keys()
}

// TopicDescription returns a copy of the description for name.
func (s *MapSupplier) TopicDescription(name types.SchemaTableName) (types.TopicDescription, bool) {
	d, ok := s.tables.Get(name)
	if !ok {
		return types.TopicDescription{}, false
	}
	return d.Clone(), true
}
