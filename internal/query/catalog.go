package query

import (
	"strings"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// Kind classifies a column by the validator its values go through.
type Kind int

const (
	KindText Kind = iota
	KindRating
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindRating:
		return "rating"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Catalog is the set of valid column names of one table, read live from the
// store for a single invocation.
type Catalog struct {
	table   string
	columns []string
	byLower map[string]string
}

// NewCatalog builds a catalog from a table's column names in table order.
func NewCatalog(table string, columns []string) *Catalog {
	c := &Catalog{
		table:   table,
		columns: append([]string(nil), columns...),
		byLower: make(map[string]string, len(columns)),
	}
	for _, col := range columns {
		c.byLower[strings.ToLower(col)] = col
	}
	return c
}

// Table returns the table the catalog describes.
func (c *Catalog) Table() string {
	return c.table
}

// Columns returns the column names in table order.
func (c *Catalog) Columns() []string {
	return append([]string(nil), c.columns...)
}

// Lookup resolves a column reference, ignoring case as SQLite does, and
// returns the declared name with its kind. Unknown names fail with
// ErrUnknownColumn and a suggestion when one is close.
func (c *Catalog) Lookup(name string) (string, Kind, error) {
	col, ok := c.byLower[strings.ToLower(name)]
	if !ok {
		return "", KindText, unknownColumnError(name, c.columns)
	}
	return col, kindOf(col), nil
}

func kindOf(column string) Kind {
	switch {
	case types.IsRatingColumn(column):
		return KindRating
	case column == types.ColumnLastMade:
		return KindDate
	default:
		return KindText
	}
}
