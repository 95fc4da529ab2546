package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/resippy/internal/prompt"
	"github.com/mesh-intelligence/resippy/internal/query"
	"github.com/mesh-intelligence/resippy/internal/validate"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

const dateFormatMessage = "Incorrect date format for last-made date. Make sure to enter date as DD/MM/YYYY."

// recipeFlags are the attribute flags shared by add and update.
type recipeFlags struct {
	dishType string
	cuisine  string
	ratings  map[string]string
	lastMade string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dishType, "dish-type", "", "kind of dish, e.g. soup or curry")
	cmd.Flags().StringVar(&f.cuisine, "cuisine", "", "cuisine, e.g. Thai")
	cmd.Flags().StringToStringVar(&f.ratings, "rating", nil, "rater=score from 1 to 5 (repeatable)")
	cmd.Flags().StringVar(&f.lastMade, "last-made", "", "date last made, DD/MM/YYYY")
}

// parseRatings validates every --rating pair against the configured raters.
func parseRatings(raw map[string]string, raters []string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for rater, score := range raw {
		name := strings.ToLower(strings.TrimSpace(rater))
		if !slices.Contains(raters, name) {
			known := "raters: " + strings.Join(raters, ", ")
			if hint := query.Suggest(name, raters); hint != "" {
				known = fmt.Sprintf("did you mean %q? %s", hint, known)
			}
			return nil, explain(types.ErrUnknownRater, "invalid --rating: %q is not a rater (%s)", rater, known)
		}
		v, err := validate.Rating(score)
		if err != nil {
			return nil, explain(err, "invalid --rating: %s's rating must be a number from 1 to 5, got %q", name, score)
		}
		out[name] = v
	}
	return out, nil
}

// parseLastMade validates --last-made when it is set.
func parseLastMade(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := validate.ParseDate(s)
	switch {
	case errors.Is(err, types.ErrInvalidDateFormat):
		return nil, explain(err, dateFormatMessage)
	case errors.Is(err, types.ErrDateOutOfRange):
		return nil, explain(err, "invalid --last-made: %s is not a date on the calendar", s)
	case err != nil:
		return nil, err
	}
	return &t, nil
}

// recipeName validates a recipe name and title-cases it.
func recipeName(s string) (string, error) {
	name, err := validate.Text(s)
	if err != nil {
		return "", explain(err, "Recipe name missing")
	}
	return cases.Title(language.English).String(strings.TrimSpace(name)), nil
}

// notFound turns a missing-recipe error into the menu's wording.
func notFound(err error, name string) error {
	if errors.Is(err, types.ErrRecipeNotFound) {
		return explain(err, "%s was not found in the menu. Please try again.", name)
	}
	return err
}

func newAddCmd(a *app) *cobra.Command {
	var f recipeFlags
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recipe to the menu",
		Example: `  resippy add "pad thai" --cuisine Thai --rating ian=4.5 --rating lina=5
  resippy add lasagne --dish-type pasta --last-made 24/12/2023`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := recipeName(strings.Join(args, " "))
			if err != nil {
				return err
			}
			ratings, err := parseRatings(f.ratings, a.config.EffectiveRaters())
			if err != nil {
				return err
			}
			lastMade, err := parseLastMade(f.lastMade)
			if err != nil {
				return err
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			_, err = b.CreateRecipe(types.Recipe{
				Name:     name,
				DishType: strings.TrimSpace(f.dishType),
				Cuisine:  strings.TrimSpace(f.cuisine),
				Ratings:  ratings,
				LastMade: lastMade,
			})
			if errors.Is(err, types.ErrRecipeExists) {
				return explain(err, "%s is already on the menu.", name)
			}
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "%s has been added to the household menu!", name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f recipeFlags
	cmd := &cobra.Command{
		Use:     "update <name>",
		Short:   "Change a recipe's details or ratings",
		Example: `  resippy update "pad thai" --rating drumlin=3 --last-made 02/03/2024`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			var u types.RecipeUpdate
			if cmd.Flags().Changed("dish-type") {
				v := strings.TrimSpace(f.dishType)
				u.DishType = &v
			}
			if cmd.Flags().Changed("cuisine") {
				v := strings.TrimSpace(f.cuisine)
				u.Cuisine = &v
			}
			var err error
			if u.Ratings, err = parseRatings(f.ratings, a.config.EffectiveRaters()); err != nil {
				return err
			}
			if u.LastMade, err = parseLastMade(f.lastMade); err != nil {
				return err
			}
			if u.IsEmpty() {
				return explain(types.ErrNothingToUpdate,
					"Nothing to update. Pass at least one of --dish-type, --cuisine, --rating or --last-made.")
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			if err := b.UpdateRecipe(name, u); err != nil {
				return notFound(err, name)
			}
			printSuccess(cmd.OutOrStdout(), "%s has been updated in the household menu!", name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a recipe with its ingredients, instructions and planned days",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			rec, err := b.GetRecipe(name)
			if err != nil {
				return notFound(err, name)
			}
			name = rec.Name
			if !yes {
				c := prompt.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := c.Confirm(fmt.Sprintf(
					"%s will be permanently deleted from the household menu. Are you sure you would like to continue?", name))
				if errors.Is(err, prompt.ErrNoAnswer) {
					return explain(err, "No answer given. %s was not deleted.", name)
				}
				if err != nil {
					return systemError(err)
				}
				if !ok {
					printNotice(cmd.OutOrStdout(), "%s was not deleted.", name)
					return nil
				}
			}

			if err := b.DeleteRecipe(name); err != nil {
				return notFound(err, name)
			}
			printSuccess(cmd.OutOrStdout(), "%s has been deleted from the menu.", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
