package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// Schema DDL. Dates are stored as TEXT in YYYY-MM-DD form so the driver
// returns them as written. Rating columns are added per rater by
// addRaterColumns.
const (
	createMenu = `CREATE TABLE IF NOT EXISTS menu (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    dish_type TEXT,
    cuisine TEXT,
    last_made TEXT
);`

	createMealPlan = `CREATE TABLE IF NOT EXISTS meal_plan (
    weekday TEXT PRIMARY KEY,
    date TEXT,
    recipe_id INTEGER REFERENCES menu(id)
);`

	createIngredients = `CREATE TABLE IF NOT EXISTS ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL REFERENCES menu(id),
    name TEXT NOT NULL,
    quantity TEXT,
    unit TEXT,
    batch_id TEXT NOT NULL
);`

	createInstructions = `CREATE TABLE IF NOT EXISTS instructions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL REFERENCES menu(id),
    step INTEGER NOT NULL,
    text TEXT NOT NULL,
    batch_id TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxMealPlanRecipe     = `CREATE INDEX IF NOT EXISTS idx_meal_plan_recipe ON meal_plan(recipe_id);`
	idxIngredientsRecipe  = `CREATE INDEX IF NOT EXISTS idx_ingredients_recipe ON ingredients(recipe_id);`
	idxInstructionsRecipe = `CREATE INDEX IF NOT EXISTS idx_instructions_recipe ON instructions(recipe_id, step);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createMenu,
	createMealPlan,
	createIngredients,
	createInstructions,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxMealPlanRecipe,
	idxIngredientsRecipe,
	idxInstructionsRecipe,
}

func initSchema(db *sql.DB, raters []string, logger *zap.Logger) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return addRaterColumns(db, raters, logger)
}

// addRaterColumns adds a rating column for each rater that lacks one.
// Columns of raters no longer configured are left in place. Rater names
// have been checked by Config.Validate, so they are safe to splice in.
func addRaterColumns(db *sql.DB, raters []string, logger *zap.Logger) error {
	existing, err := tableColumns(db, types.MenuTable)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c] = true
	}
	for _, r := range raters {
		col := types.RatingColumn(r)
		if have[col] {
			continue
		}
		ddl := fmt.Sprintf(
			`ALTER TABLE menu ADD COLUMN %s REAL CHECK (%s IS NULL OR (%s >= %.1f AND %s <= %.1f))`,
			col, col, col, types.MinRating, col, types.MaxRating,
		)
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("adding column %s: %w", col, err)
		}
		logger.Info("added rater column", zap.String("column", col))
	}
	return nil
}

// tableColumns returns a table's column names in declaration order.
func tableColumns(q interface {
	Query(string, ...any) (*sql.Rows, error)
}, table string) ([]string, error) {
	rows, err := q.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning columns of %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	return cols, nil
}
