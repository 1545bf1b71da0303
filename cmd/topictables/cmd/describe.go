package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/topictables/internal/description"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:   "describe <schema.table | table>",
	Short: "Print the resolved description of one table",
	Long: `Describe resolves the configured tables and prints the description the
connector would use for the given table. Bare names are looked up in the
default schema.

Example:
  topictables describe sales.orders --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "json",
		"Output format (json, yaml)")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeFormat != "json" && describeFormat != "yaml" {
		return fmt.Errorf("unsupported format %q: must be 'json' or 'yaml'", describeFormat)
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tables, err := description.NewFileProvider(cfg.Kafka, log).Get()
	if err != nil {
		return err
	}

	name := description.QualifyTableName(args[0], cfg.Kafka.DefaultSchema)
	desc, ok := tables.TopicDescription(name)
	if !ok {
		return fmt.Errorf("table %s is not exposed by the configuration", name)
	}

	var data []byte
	switch describeFormat {
	case "yaml":
		data, err = yaml.Marshal(desc)
	default:
		data, err = json.MarshalIndent(desc, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
