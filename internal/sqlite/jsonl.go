package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// jsonlFile is a parsed export file: its well-formed lines in order and the
// count of lines that were not valid JSON.
type jsonlFile struct {
	records   []json.RawMessage
	malformed int
}

// readJSONL reads an export file. Blank lines are ignored; lines that are
// not valid JSON are counted and dropped.
func readJSONL(path string) (jsonlFile, error) {
	var out jsonlFile
	f, err := os.Open(path)
	if err != nil {
		return out, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		switch {
		case len(line) == 0:
		case !json.Valid(line):
			out.malformed++
		default:
			out.records = append(out.records, json.RawMessage(bytes.Clone(line)))
		}
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(what string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", what, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// exportFileName returns the export file name for a table.
func exportFileName(table string) string {
	return table + ".jsonl"
}
