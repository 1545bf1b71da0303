package description

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/topictables/internal/logger"
	"github.com/dbsmedya/topictables/internal/types"
)

// ResolutionKind tells where a resolved description came from.
type ResolutionKind int

const (
	// Found means a description file described the table.
	Found ResolutionKind = iota
	// Synthesized means no file matched and a placeholder was built.
	Synthesized
)

func (k ResolutionKind) String() string {
	switch k {
	case Found:
		return "found"
	case Synthesized:
		return "synthesized"
	default:
		return "unknown"
	}
}

// Resolution is the outcome for one configured table name.
type Resolution struct {
	Name        types.SchemaTableName
	Configured  string // raw configured name
	Kind        ResolutionKind
	Description types.TopicDescription
}

// Reconciler matches configured table names against discovered descriptions.
type Reconciler struct {
	defaultSchema string
	logger        *logger.Logger
}

// NewReconciler creates a reconciler that places bare names in defaultSchema.
func NewReconciler(defaultSchema string, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Reconciler{defaultSchema: defaultSchema, logger: log}
}

// Reconcile resolves every configured name, in order.
func (r *Reconciler) Reconcile(discovered map[types.SchemaTableName]types.TopicDescription, names []string) []Resolution {
	resolutions := make([]Resolution, 0, len(names))
	for _, name := range names {
		resolutions = append(resolutions, r.Resolve(discovered, name))
	}
	return resolutions
}

// Resolve returns the discovered description for name, or a placeholder
// description when there is none.
func (r *Reconciler) Resolve(discovered map[types.SchemaTableName]types.TopicDescription, name string) Resolution {
	qualified, err := ParseTableName(name)
	if err != nil {
		r.logger.Debugf("Using %q as a table in schema %s: %v", name, r.defaultSchema, err)
		qualified = types.NewSchemaTableName(r.defaultSchema, name)
	}

	if desc, ok := discovered[qualified]; ok {
		r.logger.WithTable(qualified.String()).Debugf("Found table definition for %s", qualified)
		return Resolution{Name: qualified, Configured: name, Kind: Found, Description: desc}
	}

	// A dummy table definition only supports the internal columns.
	r.logger.WithTable(qualified.String()).Debugf("Created dummy table definition for %s", qualified)
	return Resolution{
		Name:        qualified,
		Configured:  name,
		Kind:        Synthesized,
		Description: dummyDescription(qualified, name),
	}
}

func dummyDescription(name types.SchemaTableName, topic string) types.TopicDescription {
	schema := name.Schema
	return types.TopicDescription{
		TableName:  name.Table,
		SchemaName: &schema,
		TopicName:  topic,
		Key:        types.NewDummyFieldGroup(),
		Message:    types.NewDummyFieldGroup(),
	}
}

// Effective drops resolutions overridden by a later one for the same name.
// The survivor takes the position of the first occurrence.
func Effective(resolutions []Resolution) []Resolution {
	byName := orderedmap.NewOrderedMap[types.SchemaTableName, Resolution]()
	for _, res := range resolutions {
		byName.Set(res.Name, res)
	}
	out := make([]Resolution, 0, byName.Len())
	for el := byName.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Tables folds resolutions into an ordered table map. When two resolutions
// share a name the later one wins and the first position is kept.
func Tables(resolutions []Resolution) *orderedmap.OrderedMap[types.SchemaTableName, types.TopicDescription] {
	tables := orderedmap.NewOrderedMap[types.SchemaTableName, types.TopicDescription]()
	for _, res := range Effective(resolutions) {
		tables.Set(res.Name, res.Description)
	}
	return tables
}
