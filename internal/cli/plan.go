package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/resippy/internal/mealplan"
	"github.com/mesh-intelligence/resippy/internal/prompt"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the week's meals",
	}
	cmd.AddCommand(newPlanSetCmd(a), newPlanShowCmd(a))
	return cmd
}

func newPlanSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <weekday> <recipe>",
		Short: "Plan a recipe for the next occurrence of a weekday",
		Long: "Set puts a menu recipe on the next occurrence of the weekday (a week\n" +
			"ahead when the weekday is today). If that day already holds a meal that\n" +
			"has not happened yet you are asked before it is replaced.",
		Example: `  resippy plan set wednesday "pad thai"
  resippy plan set Fri lasagne`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekday, recipe := args[0], strings.Join(args[1:], " ")

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			s := mealplan.NewScheduler(b,
				prompt.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout()),
				mealplan.WithClock(a.now),
				mealplan.WithLogger(a.logger))
			res, err := s.Assign(weekday, recipe)
			switch {
			case errors.Is(err, types.ErrRecipeNotFound):
				return notFound(err, recipe)
			case errors.Is(err, prompt.ErrNoAnswer):
				return explain(err, "No answer given. The meal plan was not changed.")
			case errors.Is(err, types.ErrSlotMissing), errors.Is(err, types.ErrWeekdayMapCorrupt):
				return systemError(err)
			case err != nil:
				return err
			}

			out := cmd.OutOrStdout()
			if res.Outcome == mealplan.Declined {
				printNotice(out, "Kept %s on %s.", res.Replaced.RecipeName, res.Weekday)
				return nil
			}
			printSuccess(out, "%s is planned for %s %s.", res.RecipeName, res.Weekday, res.Date.Format(types.DateLayout))
			return nil
		},
	}
}

func newPlanShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the seven meal-plan slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			slots, err := b.Slots()
			if err != nil {
				return err
			}
			today := a.now()
			rows := make([][]string, len(slots))
			for i, s := range slots {
				var date string
				if s.Date != nil {
					date = s.Date.Format(types.DateLayout)
				}
				rows[i] = []string{s.Weekday, date, s.RecipeName, s.State(today).String()}
			}
			renderGrid(cmd.OutOrStdout(), []string{"weekday", "date", "recipe", "status"}, rows, map[int]bool{1: true})
			return nil
		},
	}
}
