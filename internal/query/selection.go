package query

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// SQLQuery is a composed statement ready for the store to execute.
type SQLQuery struct {
	SQL  string
	Args []any
}

// Selection combines optional filter, order, and limit fragments. Any subset
// may be set.
type Selection struct {
	Filter *Fragment
	Order  *Fragment
	Limit  *Fragment
}

// Clauses renders the fragments as text in WHERE, ORDER BY, LIMIT order.
func (s Selection) Clauses() string {
	var parts []string
	if s.Filter != nil {
		parts = append(parts, "WHERE "+s.Filter.Text)
	}
	if s.Order != nil {
		parts = append(parts, "ORDER BY "+s.Order.Text)
	}
	if s.Limit != nil {
		parts = append(parts, "LIMIT "+s.Limit.Text)
	}
	return strings.Join(parts, " ")
}

// ToSQL composes a parameterized SELECT of columns from table. Filter values
// are bound as placeholders; identifiers come from the catalog.
func (s Selection) ToSQL(table string, columns []string) (SQLQuery, error) {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	b := sq.Select(quoted...).From(quoteIdent(table)).PlaceholderFormat(sq.Question)
	if s.Filter != nil {
		b = b.Where(s.Filter.pred)
	}
	if s.Order != nil {
		b = b.OrderBy(s.Order.orderBy...)
	}
	if s.Limit != nil {
		b = b.Limit(s.Limit.limit)
	}
	sqlText, args, err := b.ToSql()
	if err != nil {
		return SQLQuery{}, fmt.Errorf("composing select on %s: %w", table, err)
	}
	return SQLQuery{SQL: sqlText, Args: args}, nil
}
