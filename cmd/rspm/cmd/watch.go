package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/rspm/internal/scan"
)

var watchFormat string

var watchCmd = &cobra.Command{
	Use:   "watch DIR...",
	Short: "Re-check scripts whenever they change",
	Long: `Runs an initial check and then reparses every script that is
written, created or removed until interrupted.

Examples:
  rspm watch scripts/
  rspm watch --format json scripts/ | jq .`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "output format (text, json, yaml)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := newLoader(parserOptions())
	rep, err := newReporter(cmd, watchFormat, loader.RunID())
	if err != nil {
		return err
	}

	results, err := loader.LoadAll(ctx, args...)
	if err != nil {
		return err
	}
	if _, err := rep.Check(results, verbose); err != nil {
		return err
	}

	loader.SetOnChange(func(r *scan.Result) {
		if err := rep.Result(r, true); err != nil {
			logger.Warn("Failed to write report", "error", err)
		}
	})
	loader.SetOnDelete(func(path string) {
		if err := rep.Removed(path); err != nil {
			logger.Warn("Failed to write report", "error", err)
		}
	})

	if err := loader.StartWatching(ctx, args...); err != nil {
		return err
	}
	defer loader.Stop()

	<-loader.Done()
	return nil
}
