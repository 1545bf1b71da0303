package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/topictables/internal/description"
	"github.com/dbsmedya/topictables/internal/types"
)

var listTablesCmd = &cobra.Command{
	Use:   "list-tables",
	Short: "List the tables exposed by the configuration",
	Long: `List-tables resolves the configured table names against the table
description directory and prints every exposed table, its topic, and
whether its description came from a file or was synthesized.

Example:
  topictables list-tables --config topictables.yaml`,
	RunE: runListTables,
}

func init() {
	rootCmd.AddCommand(listTablesCmd)
}

func runListTables(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	resolutions, err := description.NewFileProvider(cfg.Kafka, log).Resolve()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(resolutions) == 0 {
		fmt.Fprintln(out, "No tables configured")
		return nil
	}

	renderTables(out, description.Effective(resolutions))
	return nil
}

var tableHeader = []string{"TABLE", "TOPIC", "SOURCE", "KEY", "MESSAGE"}

// renderTables prints resolutions as an aligned table followed by a summary line.
func renderTables(out io.Writer, resolutions []description.Resolution) {
	rows := make([][]string, 0, len(resolutions))
	found := 0
	for _, res := range resolutions {
		if res.Kind == description.Found {
			found++
		}
		rows = append(rows, []string{
			res.Name.String(),
			res.Description.TopicName,
			res.Kind.String(),
			fieldGroupSummary(res.Description.Key),
			fieldGroupSummary(res.Description.Message),
		})
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	fmt.Fprintln(out, color.Bold.Sprint(formatRow(tableHeader, widths)))
	for _, row := range rows {
		line := formatRow(row, widths)
		if row[2] == description.Synthesized.String() {
			line = color.Yellow.Sprint(line)
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintf(out, "\nTotal: %d table(s), %d from description files, %d synthesized\n",
		len(rows), found, len(rows)-found)
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.Join(padded, "  ")
}

func fieldGroupSummary(g *types.FieldGroup) string {
	if g == nil {
		return "-"
	}
	if len(g.Fields) == 0 {
		return g.DataFormat
	}
	return fmt.Sprintf("%s (%d fields)", g.DataFormat, len(g.Fields))
}
