package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/resippy/internal/query"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

func newViewCmd(a *app) *cobra.Command {
	var filter, order, limit string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the menu as a grid",
		Long: "View prints the menu. --filter takes a boolean expression over the menu's\n" +
			"columns, --order a comma-separated list of \"column ASC|DESC\" pairs, and\n" +
			"--limit a maximum number of rows.",
		Example: `  resippy view --filter "cuisine = 'Thai' and ian_rating >= 4"
  resippy view --order "last_made ASC, name ASC" --limit 5
  resippy view --filter "last_made < 01/01/2024 or last_made is null"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attach()
			if err != nil {
				return err
			}
			defer b.Detach()

			cols, err := b.Columns(types.MenuTable)
			if err != nil {
				return err
			}
			builder := query.NewBuilder(query.NewCatalog(types.MenuTable, cols))

			var sel query.Selection
			if filter != "" {
				if sel.Filter, err = builder.Filter(filter); err != nil {
					return fmt.Errorf("invalid --filter: %w", err)
				}
			}
			if order != "" {
				if sel.Order, err = builder.Order(order); err != nil {
					return fmt.Errorf("invalid --order: %w", err)
				}
			}
			if limit != "" {
				if sel.Limit, err = builder.Limit(limit); err != nil {
					return fmt.Errorf("invalid --limit: %w", err)
				}
			}

			q, err := sel.ToSQL(types.MenuTable, displayColumns(cols))
			if err != nil {
				return err
			}
			a.logger.Debug("menu query",
				zap.String("clauses", sel.Clauses()),
				zap.String("sql", q.SQL),
				zap.Any("args", q.Args))

			rs, err := b.Query(q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rs.Rows) == 0 {
				if sel.Filter != nil {
					printNotice(out, "No recipes match %s.", sel.Filter.Text)
				} else {
					printNotice(out, "The menu is empty. Add a recipe with \"resippy add\".")
				}
				return nil
			}

			rows := make([][]string, len(rs.Rows))
			for i, r := range rs.Rows {
				rows[i] = make([]string, len(r))
				for j, v := range r {
					rows[i][j] = formatCell(v)
				}
			}
			centered := make(map[int]bool)
			for i, c := range rs.Columns {
				if c == types.ColumnID || types.IsRatingColumn(c) {
					centered[i] = true
				}
			}
			renderGrid(out, rs.Columns, rows, centered)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "boolean expression, e.g. \"cuisine = 'Thai' and ian_rating > 3\"")
	cmd.Flags().StringVar(&order, "order", "", "ordering, e.g. \"lina_rating DESC, name ASC\"")
	cmd.Flags().StringVar(&limit, "limit", "", "maximum number of recipes to show")
	return cmd
}

// displayColumns moves last_made after the rating columns that are added to
// the table over time.
func displayColumns(cols []string) []string {
	out := make([]string, 0, len(cols))
	var tail []string
	for _, c := range cols {
		if c == types.ColumnLastMade {
			tail = append(tail, c)
			continue
		}
		out = append(out, c)
	}
	return append(out, tail...)
}
