package cmd

import (
	"fmt"

	"github.com/harrison/bzharness/internal/models"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered fixtures without running the compiler",
		Long: `List the fixtures of each selected category. Error fixtures are shown
with the diagnostics annotated at their top, so malformed annotations can be
spotted before a run.`,
		Args: cobra.NoArgs,
		RunE: listCommand,
	}

	addConfigFlags(cmd)

	return cmd
}

func listCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	set, err := discover(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range set.Categories {
		fixtures := set.Of(c)
		fmt.Fprintf(out, "%s (%d):\n", c, len(fixtures))
		for _, f := range fixtures {
			fmt.Fprintf(out, "    %s\n", f.Path)
			if f.Category != models.CategoryError {
				continue
			}
			if !f.HasAnnotations() {
				fmt.Fprintln(out, "        (no expected diagnostics)")
			}
			for _, d := range f.Expected {
				fmt.Fprintf(out, "        %s\n", d)
			}
		}
	}
	fmt.Fprintf(out, "%d fixture(s)\n", set.Total())

	return nil
}
