package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

func populate(t *testing.T, b *Backend) {
	t.Helper()
	seedMenu(t, b)
	id, err := b.FindRecipeID("Lasagne")
	require.NoError(t, err)
	require.NoError(t, b.WriteSlot("Friday", *date(2026, time.October, 16), id))
	_, err = b.ImportIngredients("Lasagne", []types.Ingredient{{Name: "pasta sheets", Quantity: "12"}})
	require.NoError(t, err)
	_, err = b.ImportInstructions("Lasagne", []string{"Layer", "Bake"})
	require.NoError(t, err)
}

func TestExport(t *testing.T) {
	b := setupBackend(t)
	populate(t, b)
	dir := filepath.Join(t.TempDir(), "export")

	counts, err := b.Export(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		types.MenuTable:         4,
		types.MealPlanTable:     7,
		types.IngredientsTable:  1,
		types.InstructionsTable: 2,
	}, counts)

	file, err := readJSONL(filepath.Join(dir, "meal_plan.jsonl"))
	require.NoError(t, err)
	records := file.records
	require.Len(t, records, 7)

	var monday, friday map[string]any
	require.NoError(t, json.Unmarshal(records[0], &monday))
	require.NoError(t, json.Unmarshal(records[4], &friday))
	assert.Equal(t, "Monday", monday["weekday"])
	assert.Nil(t, monday["date"])
	assert.Equal(t, "Friday", friday["weekday"])
	assert.Equal(t, "2026-10-16", friday["date"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temp files left behind")
}

func TestRestore_RoundTrip(t *testing.T) {
	src := setupBackend(t)
	populate(t, src)
	dir := t.TempDir()
	_, err := src.Export(dir)
	require.NoError(t, err)

	dst := setupBackend(t)
	_, err = dst.CreateRecipe(types.Recipe{Name: "Leftovers"})
	require.NoError(t, err)

	counts, err := dst.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, counts[types.MenuTable])
	assert.Equal(t, 7, counts[types.MealPlanTable])

	_, err = dst.FindRecipeID("Leftovers")
	assert.ErrorIs(t, err, types.ErrRecipeNotFound, "restore replaces existing data")

	got, err := dst.GetRecipe("Lasagne")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"ian": 4.5}, got.Ratings)
	assert.Equal(t, "2023-12-24", got.LastMade.Format(types.DateLayout))

	slot, err := dst.ReadSlot("Friday")
	require.NoError(t, err)
	assert.Equal(t, "Lasagne", slot.RecipeName)

	steps, err := dst.Instructions("Lasagne")
	require.NoError(t, err)
	assert.Len(t, steps, 2)
}

func TestRestore_SkipsBadLines(t *testing.T) {
	b := setupBackend(t)
	dir := t.TempDir()
	files := map[string]string{
		"menu.jsonl": `{"id":1,"name":"Soup","ian_rating":4,"unknown_field":"ignored"}
not json
{"id":2,"name":"soup"}
`,
		"meal_plan.jsonl":    `{"weekday":"Monday","date":"2026-10-19","recipe_id":1}` + "\n" + `{"weekday":"Someday"}` + "\n",
		"ingredients.jsonl":  `{"id":1,"recipe_id":99,"name":"orphan","batch_id":"b"}` + "\n",
		"instructions.jsonl": "",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	counts, err := b.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[types.MenuTable], "duplicate name skipped")
	assert.Equal(t, 1, counts[types.MealPlanTable], "unknown weekday skipped")
	assert.Equal(t, 0, counts[types.IngredientsTable], "orphan skipped")

	slot, err := b.ReadSlot("Monday")
	require.NoError(t, err)
	assert.Equal(t, "Soup", slot.RecipeName)
}

func TestRestore_SkipsBadDates(t *testing.T) {
	b := setupBackend(t)
	dir := t.TempDir()
	files := map[string]string{
		"menu.jsonl": `{"id":1,"name":"Pasta","last_made":"30/02/2022"}
{"id":2,"name":"Stew","last_made":20221101}
{"id":3,"name":"Curry","last_made":"2022-11-01"}
{"id":4,"name":"Soup","last_made":null}
`,
		"meal_plan.jsonl": `{"weekday":"Friday","date":"next friday","recipe_id":3}
{"weekday":"Tuesday","date":"2026-02-30","recipe_id":3}
{"weekday":"Monday","date":"2026-10-19","recipe_id":3}
{"weekday":"Sunday","date":null,"recipe_id":null}
`,
		"ingredients.jsonl":  "",
		"instructions.jsonl": "",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	counts, err := b.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.MenuTable])
	assert.Equal(t, 2, counts[types.MealPlanTable])

	_, err = b.FindRecipeID("Pasta")
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)

	slots, err := b.Slots()
	require.NoError(t, err)
	for _, slot := range slots {
		switch slot.Weekday {
		case "Monday":
			assert.Equal(t, "Curry", slot.RecipeName)
		default:
			assert.Nil(t, slot.Date, slot.Weekday)
		}
	}
}

func TestRestore_MissingFileLeavesStoreUnchanged(t *testing.T) {
	b := setupBackend(t)
	_, err := b.CreateRecipe(types.Recipe{Name: "Keep Me"})
	require.NoError(t, err)

	_, err = b.Restore(t.TempDir())
	require.Error(t, err)

	_, err = b.FindRecipeID("Keep Me")
	assert.NoError(t, err)
}
