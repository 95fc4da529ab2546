// Package ingest parses the files that feed a recipe's sibling tables:
// ingredient lists as CSV and instructions as plain text.
package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

var (
	ErrMalformedFile = errors.New("malformed import file")
	ErrNoRecords     = errors.New("import file has no records")
)

// ingredientHeader is the optional first row of an ingredient CSV.
var ingredientHeader = []string{"name", "quantity", "unit"}

// stepNumber matches a leading "3." or "3)" enumeration on an instruction.
var stepNumber = regexp.MustCompile(`^\d+[.)](\s+|$)`)

// ParseIngredientsCSV reads rows of name[,quantity[,unit]]. A first row equal
// to the header (any case) is skipped, as are blank lines and lines starting
// with '#'. Fields are trimmed.
func ParseIngredientsCSV(r io.Reader) ([]types.Ingredient, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []types.Ingredient
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		if len(rec) > len(ingredientHeader) {
			return nil, fmt.Errorf("%w: line %d: want at most %d fields, got %d",
				ErrMalformedFile, line, len(ingredientHeader), len(rec))
		}
		fields := make([]string, len(ingredientHeader))
		for i, f := range rec {
			fields[i] = strings.TrimSpace(f)
		}
		if fields[0] == "" {
			return nil, fmt.Errorf("line %d: ingredient name: %w", line, types.ErrEmptyText)
		}
		out = append(out, types.Ingredient{Name: fields[0], Quantity: fields[1], Unit: fields[2]})
	}
	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 || len(rec) > len(ingredientHeader) {
		return false
	}
	for i, f := range rec {
		if !strings.EqualFold(strings.TrimSpace(f), ingredientHeader[i]) {
			return false
		}
	}
	return true
}

// ParseInstructions reads one step per non-blank line. A leading "1." or
// "1)" is dropped since steps are renumbered on import.
func ParseInstructions(r io.Reader) ([]string, error) {
	var steps []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSpace(stepNumber.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		steps = append(steps, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading instructions: %w", err)
	}
	if len(steps) == 0 {
		return nil, ErrNoRecords
	}
	return steps, nil
}
