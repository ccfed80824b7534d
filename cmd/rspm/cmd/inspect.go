package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/rspm/pkg/script/parser"
)

var (
	inspectFormat  string
	inspectGlobals bool
	inspectWith    []string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "List the declarations of a script",
	Long: `Parses one script and lists its declarations in source order.

Variables referenced from other packages can be resolved by loading
those packages first with --with.

Examples:
  rspm inspect lib_core.rsc
  rspm inspect --globals lib_core.rsc
  rspm inspect --format json lib_core.rsc
  rspm inspect --with lib/ app.rsc`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "", "output format (text, json, yaml)")
	inspectCmd.Flags().BoolVarP(&inspectGlobals, "globals", "g", false, "only list global variables, functions and commands")
	inspectCmd.Flags().StringSliceVar(&inspectWith, "with", nil, "files or directories whose declarations may be referenced")
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts := parserOptions()
	runID := ""

	if len(inspectWith) > 0 {
		deps := newLoader(opts)
		runID = deps.RunID()
		results, err := deps.LoadAll(cmd.Context(), inspectWith...)
		if err != nil {
			return fmt.Errorf("failed to load dependencies: %w", err)
		}
		for _, r := range results {
			if !r.OK() {
				return fmt.Errorf("failed to load dependency %s: %w", r.Path, r.Err)
			}
		}
		opts.Globals = deps.Globals()
	}

	rep, err := newReporter(cmd, inspectFormat, runID)
	if err != nil {
		return err
	}

	pkg, err := parser.ParseFile(args[0], opts)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			if derr := rep.Diagnostic(args[0], err); derr != nil {
				return derr
			}
			return errCheckFailed
		}
		return err
	}

	return rep.Package(pkg, inspectGlobals)
}
