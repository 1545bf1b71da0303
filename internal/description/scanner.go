// Package description resolves the tables a topic connector exposes from a
// directory of JSON table description files and a configured list of names.
package description

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dbsmedya/topictables/internal/logger"
	"github.com/dbsmedya/topictables/internal/types"
)

// FileSuffix marks a directory entry as a table description file.
const FileSuffix = ".json"

// Scanner reads table description files from a single directory.
// Only direct children are considered.
type Scanner struct {
	fs            afero.Fs
	defaultSchema string
	logger        *logger.Logger
}

// NewScanner creates a scanner over fs. Descriptions without a schema name
// are keyed under defaultSchema.
func NewScanner(fs afero.Fs, defaultSchema string, log *logger.Logger) *Scanner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Scanner{
		fs:            fs,
		defaultSchema: defaultSchema,
		logger:        log,
	}
}

// Scan decodes every description file in dir and keys it by the schema and
// table names found in the file.
//
// An empty, missing or non-directory path yields an empty result. A file that
// fails to decode returns a *DecodeError, and two files describing the same
// table return a *DuplicateTableError.
func (s *Scanner) Scan(dir string) (map[types.SchemaTableName]types.TopicDescription, error) {
	tables := make(map[types.SchemaTableName]types.TopicDescription)
	sources := make(map[types.SchemaTableName]string)

	s.logger.Debugf("Loading table definitions from %s", absPath(dir))

	for _, path := range s.descriptionFiles(dir) {
		desc, err := s.decodeFile(path)
		if err != nil {
			return nil, err
		}

		name := types.NewSchemaTableName(desc.Schema(s.defaultSchema), desc.TableName)
		if first, exists := sources[name]; exists {
			return nil, &DuplicateTableError{Table: name, Path: path, FirstPath: first}
		}

		s.logger.WithFile(path).Debugf("Table %s: topic %s", name, desc.TopicName)
		tables[name] = desc
		sources[name] = path
	}

	s.logger.Debugf("Loaded table definitions: %v", sortedNames(tables))

	return tables, nil
}

// descriptionFiles lists the regular *.json files directly under dir.
// The listing is re-read on every call.
func (s *Scanner) descriptionFiles(dir string) []string {
	if dir == "" {
		return nil
	}

	info, err := s.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		s.logger.Debugf("Table description directory %s is not available", dir)
		return nil
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		s.logger.Warnf("Failed to list table description directory %s: %v", dir, err)
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	s.logger.Debugf("Considering files: %v", names)

	var files []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), FileSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Stat follows symlinks, ReadDir does not.
		fi, err := s.fs.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files
}

// decodeFile reads one description. The file is closed before returning.
func (s *Scanner) decodeFile(path string) (types.TopicDescription, error) {
	var desc types.TopicDescription

	f, err := s.fs.Open(path)
	if err != nil {
		return desc, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&desc); err != nil {
		return types.TopicDescription{}, &DecodeError{Path: path, Err: err}
	}
	if err := desc.Validate(); err != nil {
		return types.TopicDescription{}, &DecodeError{Path: path, Err: err}
	}

	return desc, nil
}

func absPath(dir string) string {
	if dir == "" {
		return dir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
