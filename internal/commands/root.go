package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonpl-dev/canonpl/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "canonpl",
		Short:   "Canonical P&L pipeline and comparison reporting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newValueCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
