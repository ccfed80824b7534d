package cmd

import (
	"github.com/spf13/cobra"
)

var (
	checkFormat  string
	checkWorkers int
	checkExclude []string
)

var checkCmd = &cobra.Command{
	Use:   "check DIR|FILE...",
	Short: "Parse scripts and report failures",
	Long: `Parses every script under the given directories and files
concurrently. Each file is parsed on its own. The command fails if any
file fails to parse.

Examples:
  rspm check scripts/
  rspm check --workers 4 --exclude '*_test.rsc' scripts/
  rspm check --format json lib_core.rsc lib_net.rsc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "", "output format (text, json, yaml)")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "number of files parsed at once (default from config)")
	checkCmd.Flags().StringSliceVar(&checkExclude, "exclude", nil, "additional base name globs to skip")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkWorkers > 0 {
		appConfig.Scan.Workers = checkWorkers
	}
	appConfig.Scan.Exclude = append(appConfig.Scan.Exclude, checkExclude...)
	if err := appConfig.Validate(); err != nil {
		return err
	}

	loader := newLoader(parserOptions())
	rep, err := newReporter(cmd, checkFormat, loader.RunID())
	if err != nil {
		return err
	}

	results, err := loader.LoadAll(cmd.Context(), args...)
	if err != nil {
		return err
	}

	summary, err := rep.Check(results, verbose)
	if err != nil {
		return err
	}
	if !summary.OK() {
		return errCheckFailed
	}
	return nil
}
