package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONL_SkipsBlankAndMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.jsonl")
	content := "{\"id\":1}\n\n   \n{broken\n{\"id\":2}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, file.records, 2)
	assert.JSONEq(t, `{"id":1}`, string(file.records[0]))
	assert.JSONEq(t, `{"id":2}`, string(file.records[1]))
	assert.Equal(t, 1, file.malformed)
}

func TestReadJSONL_MissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteJSONL_ReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	records := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Soup"}`),
		json.RawMessage(`{"id":2,"name":"Stew"}`),
	}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1,\"name\":\"Soup\"}\n{\"id\":2,\"name\":\"Stew\"}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file renamed into place")
}

func TestWriteJSONL_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingredients.jsonl")
	require.NoError(t, writeJSONL(path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteJSONL_MissingDir(t *testing.T) {
	err := writeJSONL(filepath.Join(t.TempDir(), "gone", "menu.jsonl"), nil)
	assert.Error(t, err)
}
