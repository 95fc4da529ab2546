package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/resippy/internal/prompt"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

func printCounts(w io.Writer, counts map[string]int) {
	for _, table := range types.StandardTableNames {
		fmt.Fprintf(w, "  %-13s %d\n", table, counts[table])
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every table to <dir>/<table>.jsonl",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			counts, err := b.Export(args[0])
			if err != nil {
				return systemError(err)
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Exported to %s", args[0])
			printCounts(out, counts)
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <dir>",
		Short: "Replace the menu and meal plan with an export",
		Long: "Restore loads the JSONL files written by export. Everything currently\n" +
			"stored is replaced. Lines that cannot be loaded are skipped and logged.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if !yes {
				c := prompt.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := c.Confirm(fmt.Sprintf(
					"Restoring from %s replaces everything in %s. Are you sure you would like to continue?", dir, a.config.DataDir))
				if errors.Is(err, prompt.ErrNoAnswer) {
					return explain(err, "No answer given. Nothing was restored.")
				}
				if err != nil {
					return systemError(err)
				}
				if !ok {
					printNotice(cmd.OutOrStdout(), "Nothing was restored.")
					return nil
				}
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			counts, err := b.Restore(dir)
			if err != nil {
				return systemError(err)
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Restored from %s", dir)
			printCounts(out, counts)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "restore without asking")
	return cmd
}
