package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/resippy/internal/query"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

// ResultSet holds the rows of an executed query. Values are nil, int64,
// float64, or string.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Columns returns the live column list of a known table.
func (b *Backend) Columns(table string) ([]string, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	if !isStandardTable(table) {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, table)
	}
	return tableColumns(b.db, table)
}

// Query executes a composed statement.
func (b *Backend) Query(q query.SQLQuery) (*ResultSet, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()
	return b.query(q)
}

// query runs q on the open database. Callers hold b.mu.
func (b *Backend) query(q query.SQLQuery) (*ResultSet, error) {
	rows, err := b.db.Query(q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}
	rs := &ResultSet{Columns: cols}
	for rows.Next() {
		row := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		for i, v := range row {
			if bs, ok := v.([]byte); ok {
				row[i] = string(bs)
			}
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading result rows: %w", err)
	}
	return rs, nil
}

func isStandardTable(name string) bool {
	for _, t := range types.StandardTableNames {
		if t == name {
			return true
		}
	}
	return false
}
