package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/topictables/internal/config"
	"github.com/dbsmedya/topictables/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "topictables.yaml"

// CLI flags that override config file values
var (
	cfgFile             string
	logLevel            string
	logFormat           string
	defaultSchema       string
	tableDescriptionDir string
	tableNames          []string
	noColor             bool
)

var rootCmd = &cobra.Command{
	Use:   "topictables",
	Short: "Topic table description resolver",
	Long: `Resolve the tables a streaming-topic connector exposes from a directory
of JSON table description files and a configured list of table names.

Features:
  - One description file per table, keyed by the names inside the file
  - Configured names as "schema.table" or bare "table" in the default schema
  - Placeholder tables for configured names without a description file
  - Duplicate and malformed description files are reported, never skipped`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Disable()
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Table resolution overrides
	rootCmd.PersistentFlags().StringVar(&defaultSchema, "default-schema", "",
		"Override schema used for table names without one")
	rootCmd.PersistentFlags().StringVar(&tableDescriptionDir, "table-description-dir", "",
		"Override directory holding table description files")
	rootCmd.PersistentFlags().StringSliceVar(&tableNames, "table-names", nil,
		"Override configured table names (comma separated)")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:            logLevel,
		LogFormat:           logFormat,
		DefaultSchema:       defaultSchema,
		TableDescriptionDir: tableDescriptionDir,
		TableNames:          tableNames,
	}
}

// loadConfig loads the config file, applies CLI overrides and validates the
// result. A missing default config file falls back to built-in defaults.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		if configFile != defaultConfigFile || !isNotExist(configFile) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = config.DefaultConfig()
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration and builds the logger every command uses.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
