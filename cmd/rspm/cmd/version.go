package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/rspm/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// No configuration is needed to print the version
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.Info().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
