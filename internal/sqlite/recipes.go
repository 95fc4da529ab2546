package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

// CreateRecipe inserts r and returns its new id. Names are unique without
// regard to case; a duplicate fails with ErrRecipeExists.
func (b *Backend) CreateRecipe(r types.Recipe) (int64, error) {
	if err := b.lockAttached(); err != nil {
		return 0, err
	}
	defer b.mu.RUnlock()

	if strings.TrimSpace(r.Name) == "" {
		return 0, types.ErrEmptyText
	}
	values := map[string]any{
		types.ColumnName:     r.Name,
		types.ColumnDishType: nullString(r.DishType),
		types.ColumnCuisine:  nullString(r.Cuisine),
		types.ColumnLastMade: nullDate(r.LastMade),
	}
	if err := b.addRatings(values, r.Ratings); err != nil {
		return 0, err
	}

	query, args, err := sq.Insert(types.MenuTable).SetMap(values).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert: %w", err)
	}
	res, err := b.db.Exec(query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", types.ErrRecipeExists, r.Name)
		}
		return 0, fmt.Errorf("inserting recipe %s: %w", r.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new recipe id: %w", err)
	}
	return id, nil
}

// UpdateRecipe applies the non-nil fields of u to the named recipe.
func (b *Backend) UpdateRecipe(name string, u types.RecipeUpdate) error {
	if err := b.lockAttached(); err != nil {
		return err
	}
	defer b.mu.RUnlock()

	if u.IsEmpty() {
		return types.ErrNothingToUpdate
	}
	id, err := findRecipeID(b.db, name)
	if err != nil {
		return err
	}

	values := map[string]any{}
	if u.DishType != nil {
		values[types.ColumnDishType] = nullString(*u.DishType)
	}
	if u.Cuisine != nil {
		values[types.ColumnCuisine] = nullString(*u.Cuisine)
	}
	if u.LastMade != nil {
		values[types.ColumnLastMade] = nullDate(u.LastMade)
	}
	if err := b.addRatings(values, u.Ratings); err != nil {
		return err
	}

	query, args, err := sq.Update(types.MenuTable).
		SetMap(values).
		Where(sq.Eq{types.ColumnID: id}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}
	if _, err := b.db.Exec(query, args...); err != nil {
		return fmt.Errorf("updating recipe %s: %w", name, err)
	}
	return nil
}

// DeleteRecipe removes the named recipe with its ingredients and
// instructions, and empties any meal-plan slot that references it, in one
// transaction.
func (b *Backend) DeleteRecipe(name string) error {
	if err := b.lockAttached(); err != nil {
		return err
	}
	defer b.mu.RUnlock()

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := findRecipeID(tx, name)
	if err != nil {
		return err
	}
	steps := []struct {
		what  string
		query string
	}{
		{"ingredients", "DELETE FROM ingredients WHERE recipe_id = ?"},
		{"instructions", "DELETE FROM instructions WHERE recipe_id = ?"},
		{"meal plan slots", "UPDATE meal_plan SET date = NULL, recipe_id = NULL WHERE recipe_id = ?"},
		{"recipe", "DELETE FROM menu WHERE id = ?"},
	}
	for _, s := range steps {
		if _, err := tx.Exec(s.query, id); err != nil {
			return fmt.Errorf("deleting %s of %s: %w", s.what, name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete of %s: %w", name, err)
	}
	return nil
}

// GetRecipe returns the named recipe with every configured rating.
func (b *Backend) GetRecipe(name string) (*types.Recipe, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	cols := []string{types.ColumnID, types.ColumnName, types.ColumnDishType, types.ColumnCuisine, types.ColumnLastMade}
	for _, r := range b.raters {
		cols = append(cols, types.RatingColumn(r))
	}
	query, args, err := sq.Select(cols...).
		From(types.MenuTable).
		Where(sq.Eq{types.ColumnName: name}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	var (
		rec               types.Recipe
		dishType, cuisine sql.NullString
		lastMade          sql.NullString
		ratings           = make([]sql.NullFloat64, len(b.raters))
	)
	dest := []any{&rec.ID, &rec.Name, &dishType, &cuisine, &lastMade}
	for i := range ratings {
		dest = append(dest, &ratings[i])
	}
	if err := b.db.QueryRow(query, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", types.ErrRecipeNotFound, name)
		}
		return nil, fmt.Errorf("getting recipe %s: %w", name, err)
	}
	rec.DishType = dishType.String
	rec.Cuisine = cuisine.String
	if lastMade.Valid {
		t, err := parseDate(lastMade.String)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
		rec.LastMade = &t
	}
	rec.Ratings = make(map[string]float64)
	for i, r := range b.raters {
		if ratings[i].Valid {
			rec.Ratings[r] = ratings[i].Float64
		}
	}
	return &rec, nil
}

// FindRecipeID returns the id of the named recipe, ignoring case.
func (b *Backend) FindRecipeID(name string) (int64, error) {
	if err := b.lockAttached(); err != nil {
		return 0, err
	}
	defer b.mu.RUnlock()
	return findRecipeID(b.db, name)
}

func findRecipeID(q queryer, name string) (int64, error) {
	var id int64
	err := q.QueryRow("SELECT id FROM menu WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", types.ErrRecipeNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("finding recipe %s: %w", name, err)
	}
	return id, nil
}

// addRatings copies ratings into values keyed by column, rejecting raters
// that are not configured and values outside the rating range.
func (b *Backend) addRatings(values map[string]any, ratings map[string]float64) error {
	for rater, v := range ratings {
		if !b.isRater(rater) {
			return fmt.Errorf("%w %q (raters: %s)", types.ErrUnknownRater, rater, strings.Join(b.raters, ", "))
		}
		if !(v >= types.MinRating && v <= types.MaxRating) {
			return fmt.Errorf("%w: %s %v", types.ErrInvalidRating, rater, v)
		}
		values[types.RatingColumn(rater)] = v
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(types.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(types.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", s, err)
	}
	return t, nil
}
