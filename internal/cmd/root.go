package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for bzharness
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bzharness",
		Short: "Test harness for the bozon compiler",
		Long: `bzharness runs the bozon compiler over the fixtures in the tests
directory and checks its exit codes and output.

Fixtures live in success/, warning/ and error/ directories. Success fixtures
must compile silently, warning fixtures must compile with some output and
error fixtures must fail with exactly the diagnostics annotated at their top.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints errors so fixture failures can exit without one
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewListCommand())

	return cmd
}
