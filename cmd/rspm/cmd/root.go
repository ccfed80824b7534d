package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/rspm/internal/report"
	"github.com/msto63/rspm/internal/scan"
	"github.com/msto63/rspm/pkg/core/config"
	"github.com/msto63/rspm/pkg/core/logging"
	"github.com/msto63/rspm/pkg/script/parser"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	appConfig *config.Config
	logger    *logging.Logger
)

// errCheckFailed is returned when at least one script failed to parse. The
// diagnostics have already been printed.
var errCheckFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:   "rspm",
	Short: "rspm - RouterOS script package metadata",
	Long: `rspm reads RouterOS style script packages and extracts their
declarations: global and local variables, functions, commands and the
package return value.

Commands:
  inspect  - list the declarations of one script
  check    - parse many scripts and report failures
  watch    - re-check scripts whenever they change
  version  - show build information`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errCheckFailed) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./rspm.toml, $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// setup loads the configuration and installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if noColor {
		appConfig.Output.Color = report.ColorNever
	}

	logger, err = logging.NewLogger(appConfig.LoggerConfig("rspm", verbose))
	if err != nil {
		return fmt.Errorf("invalid logger configuration: %w", err)
	}
	logging.SetDefault(logger)

	logger.Debug("Configuration loaded", "config", cfgFile, "workers", appConfig.Scan.Workers)
	return nil
}

// parserOptions builds per-file parser options from the configuration
func parserOptions() parser.Options {
	return parser.Options{
		Logger:        logger,
		BufferSize:    appConfig.Parser.BufferSize,
		SnippetLength: appConfig.Parser.SnippetLength,
	}
}

// newLoader builds a loader from the configuration
func newLoader(opts parser.Options) *scan.Loader {
	return scan.NewLoader(scan.Options{
		Extensions: appConfig.Scan.Extensions,
		Exclude:    appConfig.Scan.Exclude,
		Workers:    appConfig.Scan.Workers,
		Debounce:   appConfig.Watch.Debounce.Duration,
		Parser:     opts,
		Logger:     logger,
	})
}

// newReporter builds a reporter writing to the command's output. An empty
// format falls back to the configured one.
func newReporter(cmd *cobra.Command, format, runID string) (*report.Reporter, error) {
	if format == "" {
		format = appConfig.Output.Format
	}
	return report.New(cmd.OutOrStdout(), report.Options{
		Format: report.Format(format),
		Color:  appConfig.Output.Color,
		RunID:  runID,
	})
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
