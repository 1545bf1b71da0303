package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/topictables/internal/description"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and table description files",
	Long: `Validate checks the configuration file and decodes every table
description file, failing on the first problem.

Checks performed:
  - Configuration syntax and required fields
  - Every *.json description file decodes and carries the required fields
  - No two description files describe the same table

Example:
  topictables validate --config topictables.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	out := cmd.OutOrStdout()

	log.Info("Starting validation checks...")

	fmt.Fprintf(out, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(out, "Description dir: %s\n", cfg.Kafka.TableDescriptionDir)
	fmt.Fprintf(out, "Default schema: %s\n", cfg.Kafka.DefaultSchema)
	fmt.Fprintf(out, "Configured tables: %d\n\n", len(cfg.Kafka.Names()))

	discovered, err := description.NewScanner(nil, cfg.Kafka.DefaultSchema, log).Scan(cfg.Kafka.TableDescriptionDir)
	if err != nil {
		fmt.Fprintf(out, "%s Description files invalid: %v\n", color.Red.Sprint("❌"), err)
		return fmt.Errorf("validation failed: %w", err)
	}
	fmt.Fprintf(out, "%s %d description file(s) decoded\n", color.Green.Sprint("✅"), len(discovered))

	resolutions := description.NewReconciler(cfg.Kafka.DefaultSchema, log).Reconcile(discovered, cfg.Kafka.Names())
	for _, res := range description.Effective(resolutions) {
		if res.Kind == description.Synthesized {
			fmt.Fprintf(out, "%s %s has no description file, only internal columns are exposed\n",
				color.Yellow.Sprint("⚠️"), res.Name)
		}
	}

	fmt.Fprintln(out, "\n=== Validation Complete ===")
	return nil
}
