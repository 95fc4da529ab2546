package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/resippy/internal/ingest"
)

// splitRecipeAndFile takes the last argument as the file and the rest as
// the recipe name, so names need no quoting.
func splitRecipeAndFile(args []string) (string, string) {
	return strings.Join(args[:len(args)-1], " "), args[len(args)-1]
}

func openImport(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, systemError(fmt.Errorf("opening %s: %w", path, err))
	}
	return f, nil
}

func newIngredientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "Import or list a recipe's ingredients",
	}

	importCmd := &cobra.Command{
		Use:   "import <recipe> <file.csv>",
		Short: "Append ingredients from a CSV of name,quantity,unit rows",
		Long: "Import reads a CSV file with one ingredient per row: name, then an\n" +
			"optional quantity and unit. A name,quantity,unit header row is allowed.\n" +
			"Every row is added or none are.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, path := splitRecipeAndFile(args)
			f, err := openImport(path)
			if err != nil {
				return err
			}
			defer f.Close()

			items, err := ingest.ParseIngredientsCSV(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			batch, err := b.ImportIngredients(recipe, items)
			if err != nil {
				return notFound(err, recipe)
			}
			printSuccess(cmd.OutOrStdout(), "Imported %d ingredients into %s (batch %s).", len(items), recipe, batch)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <recipe>",
		Short: "List a recipe's ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe := strings.Join(args, " ")
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			items, err := b.Ingredients(recipe)
			if err != nil {
				return notFound(err, recipe)
			}
			if len(items) == 0 {
				printNotice(cmd.OutOrStdout(), "%s has no ingredients yet.", recipe)
				return nil
			}
			rows := make([][]string, len(items))
			for i, it := range items {
				rows[i] = []string{it.Name, it.Quantity, it.Unit}
			}
			renderGrid(cmd.OutOrStdout(), []string{"ingredient", "quantity", "unit"}, rows, map[int]bool{1: true})
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}

func newInstructionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "Import or list a recipe's method",
	}

	importCmd := &cobra.Command{
		Use:   "import <recipe> <file.txt>",
		Short: "Append steps from a text file, one step per line",
		Long: "Import reads one step per non-blank line. Leading \"1.\" style numbers are\n" +
			"dropped; new steps are numbered after the recipe's existing ones.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, path := splitRecipeAndFile(args)
			f, err := openImport(path)
			if err != nil {
				return err
			}
			defer f.Close()

			steps, err := ingest.ParseInstructions(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			batch, err := b.ImportInstructions(recipe, steps)
			if err != nil {
				return notFound(err, recipe)
			}
			printSuccess(cmd.OutOrStdout(), "Imported %d steps into %s (batch %s).", len(steps), recipe, batch)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <recipe>",
		Short: "List a recipe's steps in order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe := strings.Join(args, " ")
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			steps, err := b.Instructions(recipe)
			if err != nil {
				return notFound(err, recipe)
			}
			if len(steps) == 0 {
				printNotice(cmd.OutOrStdout(), "%s has no instructions yet.", recipe)
				return nil
			}
			rows := make([][]string, len(steps))
			for i, s := range steps {
				rows[i] = []string{strconv.Itoa(s.Step), s.Text}
			}
			renderGrid(cmd.OutOrStdout(), []string{"step", "instruction"}, rows, map[int]bool{0: true})
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}
