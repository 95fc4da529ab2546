package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/resippy/internal/query"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

// Export writes every table to <dir>/<table>.jsonl, one JSON object per row
// keyed by column name, and returns the row count per table. Each file is
// replaced atomically.
func (b *Backend) Export(dir string) (map[string]int, error) {
	if err := b.lockAttached(); err != nil {
		return nil, err
	}
	defer b.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	counts := make(map[string]int, len(types.StandardTableNames))
	for _, table := range types.StandardTableNames {
		cols, err := tableColumns(b.db, table)
		if err != nil {
			return nil, err
		}
		sqlText, args, err := sq.Select(cols...).From(table).OrderBy(exportOrder(table)).ToSql()
		if err != nil {
			return nil, fmt.Errorf("building export of %s: %w", table, err)
		}
		rs, err := b.query(query.SQLQuery{SQL: sqlText, Args: args})
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", table, err)
		}

		records := make([]json.RawMessage, 0, len(rs.Rows))
		for _, row := range rs.Rows {
			rec := make(map[string]any, len(rs.Columns))
			for i, col := range rs.Columns {
				rec[col] = row[i]
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return nil, fmt.Errorf("marshaling %s row: %w", table, err)
			}
			records = append(records, data)
		}
		if err := writeJSONL(filepath.Join(dir, exportFileName(table)), records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", exportFileName(table), err)
		}
		counts[table] = len(records)
	}
	b.logger.Sugar().Infow("exported", "dir", dir, "rows", counts)
	return counts, nil
}

func exportOrder(table string) string {
	if table == types.MealPlanTable {
		return "CASE weekday " +
			"WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3 " +
			"WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6 ELSE 7 END"
	}
	return "id"
}
