package description

import (
	"fmt"

	"github.com/dbsmedya/topictables/internal/types"
)

// DecodeError reports a description file that could not be read or decoded.
// Any DecodeError aborts the whole resolution.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to get table description file %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DuplicateTableError reports two description files that resolve to the
// same qualified table name.
type DuplicateTableError struct {
	Table     types.SchemaTableName
	Path      string
	FirstPath string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("duplicate table description for %s: %s and %s", e.Table, e.FirstPath, e.Path)
}
