package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

const selectSlot = `SELECT mp.weekday, mp.date, mp.recipe_id, m.name
FROM meal_plan mp LEFT JOIN menu m ON m.id = mp.recipe_id
WHERE mp.weekday = ?`

// ReadSlot returns the slot for weekday with the assigned recipe's name.
// A missing row fails with ErrSlotMissing.
func (b *Backend) ReadSlot(weekday string) (types.MealPlanSlot, error) {
	if err := b.lockAttached(); err != nil {
		return types.MealPlanSlot{}, err
	}
	defer b.mu.RUnlock()
	return readSlot(b.db, weekday)
}

func readSlot(q queryer, weekday string) (types.MealPlanSlot, error) {
	var (
		slot     types.MealPlanSlot
		date     sql.NullString
		recipeID sql.NullInt64
		name     sql.NullString
	)
	err := q.QueryRow(selectSlot, weekday).Scan(&slot.Weekday, &date, &recipeID, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return types.MealPlanSlot{}, fmt.Errorf("%w: %s", types.ErrSlotMissing, weekday)
	}
	if err != nil {
		return types.MealPlanSlot{}, fmt.Errorf("reading %s slot: %w", weekday, err)
	}
	if date.Valid {
		t, err := parseDate(date.String)
		if err != nil {
			return types.MealPlanSlot{}, fmt.Errorf("%s slot: %w", weekday, err)
		}
		slot.Date = &t
	}
	if recipeID.Valid {
		id := recipeID.Int64
		slot.RecipeID = &id
		slot.RecipeName = name.String
	}
	return slot, nil
}

// WriteSlot stores date and recipeID in the slot for weekday.
func (b *Backend) WriteSlot(weekday string, date time.Time, recipeID int64) error {
	if err := b.lockAttached(); err != nil {
		return err
	}
	defer b.mu.RUnlock()

	res, err := b.db.Exec(
		"UPDATE meal_plan SET date = ?, recipe_id = ? WHERE weekday = ?",
		date.Format(types.DateLayout), recipeID, weekday,
	)
	if err != nil {
		return fmt.Errorf("writing %s slot: %w", weekday, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("writing %s slot: %w", weekday, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", types.ErrSlotMissing, weekday)
	}
	return nil
}

// Slots returns all seven slots, Monday first.
func (b *Backend) Slots() ([]types.MealPlanSlot, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	slots := make([]types.MealPlanSlot, 0, len(types.Weekdays))
	for _, wd := range types.Weekdays {
		slot, err := readSlot(b.db, wd)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
