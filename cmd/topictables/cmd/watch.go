package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/topictables/internal/description"
	"github.com/dbsmedya/topictables/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-resolve tables whenever description files change",
	Long: `Watch prints the resolved tables, then prints them again every time a
*.json file in the table description directory is created, changed,
renamed or removed. Each change triggers a full, fresh resolution.

The description directory must exist to be watched.

Example:
  topictables watch --config topictables.yaml`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce,
		"Quiet period after a file event before resolving again")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	provider := description.NewFileProvider(cfg.Kafka, log)
	out := cmd.OutOrStdout()

	resolve := func() error {
		resolutions, err := provider.Resolve()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n--- %s ---\n", time.Now().Format(time.RFC3339))
		renderTables(out, description.Effective(resolutions))
		return nil
	}

	ctx, stop := setupSignalHandler(cmd.Context(), func(sig os.Signal) {
		log.Infof("Received %s, stopping watcher", sig)
	})
	defer stop()

	return watch.New(cfg.Kafka.TableDescriptionDir, resolve, log).
		WithDebounce(watchDebounce).
		Run(ctx)
}
