package sqlite

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// ImportIngredients appends items to the named recipe's ingredient list in
// one transaction and returns the batch id stamped on every row.
func (b *Backend) ImportIngredients(recipe string, items []types.Ingredient) (string, error) {
	if err := b.lockAttached(); err != nil {
		return "", err
	}
	defer b.mu.RUnlock()

	batch, err := newBatchID()
	if err != nil {
		return "", err
	}
	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning ingredient import: %w", err)
	}
	defer tx.Rollback()

	id, err := findRecipeID(tx, recipe)
	if err != nil {
		return "", err
	}
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return "", fmt.Errorf("ingredient %d: %w", i+1, types.ErrEmptyText)
		}
		_, err := tx.Exec(
			"INSERT INTO ingredients (recipe_id, name, quantity, unit, batch_id) VALUES (?, ?, ?, ?, ?)",
			id, it.Name, nullString(it.Quantity), nullString(it.Unit), batch,
		)
		if err != nil {
			return "", fmt.Errorf("inserting ingredient %s: %w", it.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing ingredient import: %w", err)
	}
	b.logger.Sugar().Debugw("ingredients imported", "recipe", recipe, "count", len(items), "batch", batch)
	return batch, nil
}

// Ingredients lists the named recipe's ingredients in import order.
func (b *Backend) Ingredients(recipe string) ([]types.Ingredient, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	id, err := findRecipeID(b.db, recipe)
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT id, recipe_id, name, COALESCE(quantity, ''), COALESCE(unit, ''), batch_id FROM ingredients WHERE recipe_id = ? ORDER BY id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients of %s: %w", recipe, err)
	}
	defer rows.Close()

	var out []types.Ingredient
	for rows.Next() {
		var it types.Ingredient
		if err := rows.Scan(&it.ID, &it.RecipeID, &it.Name, &it.Quantity, &it.Unit, &it.BatchID); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ImportInstructions appends steps to the named recipe's method, numbering
// them after any existing steps, in one transaction.
func (b *Backend) ImportInstructions(recipe string, steps []string) (string, error) {
	if err := b.lockAttached(); err != nil {
		return "", err
	}
	defer b.mu.RUnlock()

	batch, err := newBatchID()
	if err != nil {
		return "", err
	}
	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning instruction import: %w", err)
	}
	defer tx.Rollback()

	id, err := findRecipeID(tx, recipe)
	if err != nil {
		return "", err
	}
	var last int
	if err := tx.QueryRow("SELECT COALESCE(MAX(step), 0) FROM instructions WHERE recipe_id = ?", id).Scan(&last); err != nil {
		return "", fmt.Errorf("reading last step of %s: %w", recipe, err)
	}
	for i, text := range steps {
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("step %d: %w", i+1, types.ErrEmptyText)
		}
		_, err := tx.Exec(
			"INSERT INTO instructions (recipe_id, step, text, batch_id) VALUES (?, ?, ?, ?)",
			id, last+i+1, text, batch,
		)
		if err != nil {
			return "", fmt.Errorf("inserting step %d: %w", last+i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing instruction import: %w", err)
	}
	b.logger.Sugar().Debugw("instructions imported", "recipe", recipe, "count", len(steps), "batch", batch)
	return batch, nil
}

// Instructions lists the named recipe's steps in order.
func (b *Backend) Instructions(recipe string) ([]types.Instruction, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	id, err := findRecipeID(b.db, recipe)
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT id, recipe_id, step, text, batch_id FROM instructions WHERE recipe_id = ? ORDER BY step",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("listing instructions of %s: %w", recipe, err)
	}
	defer rows.Close()

	var out []types.Instruction
	for rows.Next() {
		var in types.Instruction
		if err := rows.Scan(&in.ID, &in.RecipeID, &in.Step, &in.Text, &in.BatchID); err != nil {
			return nil, fmt.Errorf("scanning instruction: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// newBatchID returns a time-ordered id for one import.
func newBatchID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating batch id: %w", err)
	}
	return id.String(), nil
}
