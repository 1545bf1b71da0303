// Package config provides configuration structures and loading for topictables.
package config

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Config represents the complete application configuration.
type Config struct {
	Kafka   TableDescriptionConfig `yaml:"kafka" mapstructure:"kafka"`
	Logging LoggingConfig          `yaml:"logging" mapstructure:"logging"`
}

// TableDescriptionConfig holds the inputs of a table resolution: where the
// description files live, which tables to expose and the schema bare names
// fall into.
type TableDescriptionConfig struct {
	DefaultSchema       string   `yaml:"default_schema" mapstructure:"default_schema"`
	TableNames          []string `yaml:"table_names" mapstructure:"table_names"`                     // "schema.table" or "table"
	TableDescriptionDir string   `yaml:"table_description_dir" mapstructure:"table_description_dir"` // may be empty or missing
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultSchema is the schema used for table names that do not carry one.
const DefaultSchema = "default"

// DefaultTableDescriptionDir is where description files are looked up when
// the configuration does not say otherwise.
const DefaultTableDescriptionDir = "etc/kafka"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Kafka: TableDescriptionConfig{
			DefaultSchema:       DefaultSchema,
			TableDescriptionDir: DefaultTableDescriptionDir,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// NormalizeTableNames trims each name, drops empty ones and removes duplicates.
// The first occurrence of a name keeps its position.
func NormalizeTableNames(names []string) []string {
	set := orderedmap.NewOrderedMap[string, struct{}]()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := set.Get(name); ok {
			continue
		}
		set.Set(name, struct{}{})
	}
	return set.Keys()
}

// Names returns the configured table names, normalized.
func (c TableDescriptionConfig) Names() []string {
	return NormalizeTableNames(c.TableNames)
}
