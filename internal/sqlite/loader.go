package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// Restore replaces the store's contents with the JSONL files that Export
// wrote to dir. Loading is transactional: either every file loads or the
// store is unchanged. Malformed lines and rows that violate a constraint
// are skipped; fields that are not live columns are ignored. It returns the
// number of rows loaded per table.
func (b *Backend) Restore(dir string) (map[string]int, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	files := make(map[string]jsonlFile, len(types.StandardTableNames))
	for _, table := range types.StandardTableNames {
		name := exportFileName(table)
		file, err := readJSONL(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		files[table] = file
	}

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning restore transaction: %w", err)
	}
	defer tx.Rollback()

	resets := []string{
		"UPDATE meal_plan SET date = NULL, recipe_id = NULL",
		"DELETE FROM ingredients",
		"DELETE FROM instructions",
		"DELETE FROM menu",
	}
	for _, stmt := range resets {
		if _, err := tx.Exec(stmt); err != nil {
			return nil, fmt.Errorf("clearing store: %w", err)
		}
	}

	counts := make(map[string]int, len(files))
	// Parents load before the rows that reference them.
	for _, table := range []string{types.MenuTable, types.MealPlanTable, types.IngredientsTable, types.InstructionsTable} {
		cols, err := tableColumns(tx, table)
		if err != nil {
			return nil, err
		}
		var loaded, skipped int
		if table == types.MealPlanTable {
			loaded, skipped, err = restoreSlots(tx, files[table].records)
		} else {
			loaded, skipped, err = insertRecords(tx, table, cols, files[table].records)
		}
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", table, err)
		}
		skipped += files[table].malformed
		if skipped > 0 {
			b.logger.Warn("rows skipped during restore", zap.String("table", table), zap.Int("skipped", skipped))
		}
		counts[table] = loaded
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing restore: %w", err)
	}
	return counts, nil
}

// insertRecords inserts JSONL records into table, taking only the listed
// columns from each object.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (loaded, skipped int, err error) {
	for _, rec := range records {
		obj, err := decodeRecord(rec)
		if err != nil {
			skipped++
			continue
		}
		var (
			cols []string
			vals []any
		)
		for _, col := range columns {
			if v, ok := obj[col]; ok {
				cols = append(cols, col)
				vals = append(vals, v)
			}
		}
		if len(cols) == 0 || !validDates(obj) {
			skipped++
			continue
		}
		_, err = sq.Insert(table).Columns(cols...).Values(vals...).RunWith(tx).Exec()
		if err != nil {
			// SQLite undoes only the failed statement; the transaction goes on.
			skipped++
			continue
		}
		loaded++
	}
	return loaded, skipped, nil
}

// restoreSlots writes exported slot values onto the seeded weekday rows.
func restoreSlots(tx *sql.Tx, records []json.RawMessage) (loaded, skipped int, err error) {
	for _, rec := range records {
		var slot struct {
			Weekday  string  `json:"weekday"`
			Date     *string `json:"date"`
			RecipeID *int64  `json:"recipe_id"`
		}
		if err := json.Unmarshal(rec, &slot); err != nil {
			skipped++
			continue
		}
		if slot.Date != nil {
			if _, err := parseDate(*slot.Date); err != nil {
				skipped++
				continue
			}
		}
		res, err := sq.Update(types.MealPlanTable).
			Set("date", slot.Date).
			Set("recipe_id", slot.RecipeID).
			Where(sq.Eq{"weekday": slot.Weekday}).
			RunWith(tx).
			Exec()
		if err != nil {
			skipped++
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			skipped++
			continue
		}
		loaded++
	}
	return loaded, skipped, nil
}

// validDates reports whether every date column present in obj is null or a
// calendar date in storage form.
func validDates(obj map[string]any) bool {
	v, ok := obj[types.ColumnLastMade]
	if !ok || v == nil {
		return true
	}
	str, ok := v.(string)
	if !ok {
		return false
	}
	_, err := parseDate(str)
	return err == nil
}

// decodeRecord unmarshals one JSONL object, keeping integral numbers as
// int64 so ids bind as integers.
func decodeRecord(rec json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(rec))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	for k, v := range obj {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			obj[k] = i
		} else if f, err := n.Float64(); err == nil {
			obj[k] = f
		}
	}
	return obj, nil
}
