package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// seedMealPlan inserts the seven weekday slots. Slots that already exist are
// left as they are, so seeding runs on every attach.
func seedMealPlan(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, wd := range types.Weekdays {
		if _, err := tx.Exec("INSERT OR IGNORE INTO meal_plan (weekday) VALUES (?)", wd); err != nil {
			return fmt.Errorf("seeding %s slot: %w", wd, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
