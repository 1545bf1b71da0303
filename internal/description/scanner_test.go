package description

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/topictables/internal/logger"
	"github.com/dbsmedya/topictables/internal/types"
)

const testDir = "/etc/kafka"

const ordersJSON = `{
  "tableName": "orders",
  "schemaName": "sales",
  "topicName": "sales.orders.v1",
  "key": {"dataFormat": "raw", "fields": [{"name": "order_key", "type": "VARCHAR", "dataFormat": "BYTE"}]},
  "message": {
    "dataFormat": "json",
    "fields": [
      {"name": "id", "type": "BIGINT", "mapping": "id"},
      {"name": "total", "type": "DOUBLE", "mapping": "amount/total", "comment": "order total"}
    ]
  }
}`

const clicksJSON = `{"tableName": "clicks", "topicName": "clicks"}`

func newTestScanner(t *testing.T) (*Scanner, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0755))
	return NewScanner(fs, "default", logger.NewNop()), fs
}

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, name), []byte(content), 0644))
}

func TestScan(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "orders.json", ordersJSON)
	writeFile(t, fs, "clicks.json", clicksJSON)

	tables, err := s.Scan(testDir)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	orders, ok := tables[types.NewSchemaTableName("sales", "orders")]
	require.True(t, ok)
	assert.Equal(t, "sales.orders.v1", orders.TopicName)
	require.NotNil(t, orders.Key)
	assert.Equal(t, "raw", orders.Key.DataFormat)
	require.NotNil(t, orders.Message)
	require.Len(t, orders.Message.Fields, 2)
	assert.Equal(t, "amount/total", orders.Message.Fields[1].Mapping)
	assert.Equal(t, "order total", orders.Message.Fields[1].Comment)

	clicks, ok := tables[types.NewSchemaTableName("default", "clicks")]
	require.True(t, ok, "description without schema falls into the default schema")
	assert.Nil(t, clicks.SchemaName)
	assert.Nil(t, clicks.Key)
	assert.Nil(t, clicks.Message)
}

func TestScan_KeyComesFromContentNotFileName(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "whatever-name.json", `{"tableName": "events", "schemaName": "web", "topicName": "e"}`)

	tables, err := s.Scan(testDir)
	require.NoError(t, err)

	_, ok := tables[types.NewSchemaTableName("web", "events")]
	assert.True(t, ok)
	_, ok = tables[types.NewSchemaTableName("default", "whatever-name")]
	assert.False(t, ok)
}

func TestScan_NWellFormedFiles(t *testing.T) {
	s, fs := newTestScanner(t)
	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		writeFile(t, fs, n+".json", `{"tableName": "`+n+`", "topicName": "`+n+`"}`)
	}

	tables, err := s.Scan(testDir)
	require.NoError(t, err)
	assert.Len(t, tables, len(names))
	for _, n := range names {
		assert.Contains(t, tables, types.NewSchemaTableName("default", n))
	}
}

func TestScan_IgnoresNonDescriptionEntries(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "orders.json", ordersJSON)
	writeFile(t, fs, "README.md", "not json")
	writeFile(t, fs, "orders.json.bak", "{broken")
	writeFile(t, fs, "orders.JSON", "{broken")
	require.NoError(t, fs.MkdirAll(filepath.Join(testDir, "nested.json"), 0755))
	require.NoError(t, fs.MkdirAll(filepath.Join(testDir, "sub"), 0755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, "sub", "deep.json"), []byte(clicksJSON), 0644))

	tables, err := s.Scan(testDir)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Contains(t, tables, types.NewSchemaTableName("sales", "orders"))
}

func TestScan_MissingDirectory(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "plain.json", clicksJSON)

	tests := []struct {
		name string
		dir  string
	}{
		{"empty path", ""},
		{"nonexistent", "/does/not/exist"},
		{"file instead of directory", filepath.Join(testDir, "plain.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := s.Scan(tt.dir)
			require.NoError(t, err)
			assert.Empty(t, tables)
		})
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	s, _ := newTestScanner(t)

	tables, err := s.Scan(testDir)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestScan_DecodeFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cause   string
	}{
		{"malformed json", `{"tableName": `, "unexpected EOF"},
		{"wrong type", `{"tableName": 42, "topicName": "t"}`, "cannot unmarshal"},
		{"missing table name", `{"topicName": "t"}`, "tableName"},
		{"missing topic name", `{"tableName": "t"}`, "topicName"},
		{"null document", `null`, "tableName"},
		{"empty schema name", `{"tableName": "t", "schemaName": "", "topicName": "x"}`, "schemaName is empty"},
		{"case mismatched names", `{"TABLENAME": "u", "TopicName": "y"}`, "tableName"},
		{"field group without format", `{"tableName": "t", "topicName": "t", "message": {"fields": []}}`, "dataFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs := newTestScanner(t)
			writeFile(t, fs, "good.json", clicksJSON)
			writeFile(t, fs, "bad.json", tt.content)

			tables, err := s.Scan(testDir)
			require.Error(t, err)
			assert.Nil(t, tables, "one bad file aborts the whole scan")

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %T", err)
			assert.Equal(t, filepath.Join(testDir, "bad.json"), decodeErr.Path)
			assert.Contains(t, err.Error(), "bad.json")
			assert.Contains(t, err.Error(), tt.cause)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestScan_DuplicateTable(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "a.json", `{"tableName": "orders", "schemaName": "default", "topicName": "one"}`)
	writeFile(t, fs, "b.json", `{"tableName": "orders", "topicName": "two"}`)

	tables, err := s.Scan(testDir)
	require.Error(t, err)
	assert.Nil(t, tables)

	var dupErr *DuplicateTableError
	require.True(t, errors.As(err, &dupErr), "expected DuplicateTableError, got %T", err)
	assert.Equal(t, types.NewSchemaTableName("default", "orders"), dupErr.Table)
	assert.Equal(t, filepath.Join(testDir, "a.json"), dupErr.FirstPath)
	assert.Equal(t, filepath.Join(testDir, "b.json"), dupErr.Path)
	assert.Contains(t, err.Error(), "default.orders")
}

func TestScan_SameTableDifferentSchemas(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "a.json", `{"tableName": "orders", "schemaName": "eu", "topicName": "eu-orders"}`)
	writeFile(t, fs, "b.json", `{"tableName": "orders", "schemaName": "us", "topicName": "us-orders"}`)

	tables, err := s.Scan(testDir)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
}

func TestScan_UnknownPropertiesIgnored(t *testing.T) {
	s, fs := newTestScanner(t)
	writeFile(t, fs, "x.json", `{"tableName": "x", "topicName": "x", "retention": "7d"}`)

	tables, err := s.Scan(testDir)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestScan_OSFilesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte(ordersJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	s := NewScanner(afero.NewOsFs(), "default", nil)
	tables, err := s.Scan(dir)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Contains(t, tables, types.NewSchemaTableName("sales", "orders"))
}

func TestScan_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "orders-source.json")
	require.NoError(t, os.WriteFile(target, []byte(ordersJSON), 0644))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "orders.json")))
	// A symlinked directory named like a description file is still not a file.
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(dir, "nested.json")))

	s := NewScanner(afero.NewOsFs(), "default", nil)
	tables, err := s.Scan(dir)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Contains(t, tables, types.NewSchemaTableName("sales", "orders"))
}

func TestScan_LogsDiscovery(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, "clicks.json"), []byte(clicksJSON), 0644))

	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScanner(fs, "default", logger.FromZap(zap.New(core)))

	_, err := s.Scan(testDir)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessageSnippet("Loading table definitions").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("Considering files").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("Loaded table definitions: [default.clicks]").Len())
}
