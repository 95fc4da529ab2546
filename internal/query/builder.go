// Package query turns user-typed filter, order, and limit expressions into
// validated SQL fragments. Column names come only from a live Catalog, order
// directions only from {ASC, DESC}, and filter values are bound as
// parameters after passing the validator for their column's kind.
package query

import (
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/resippy/internal/validate"
)

// Fragment is a validated clause body plus the columns it references.
// Text is what the user typed for a filter, the normalized term list for an
// order, and the integer for a limit.
type Fragment struct {
	Text    string
	Columns []string

	pred    sq.Sqlizer
	orderBy []string
	limit   uint64
}

// Builder validates expressions against a Catalog.
type Builder struct {
	catalog *Catalog
}

// NewBuilder creates a builder for the catalog's table.
func NewBuilder(c *Catalog) *Builder {
	return &Builder{catalog: c}
}

// Filter parses and validates a WHERE body. Every comparison must reference
// a catalog column and carry a value acceptable for that column's kind; the
// first failure is returned and no fragment is produced.
func (b *Builder) Filter(expr string) (*Fragment, error) {
	ast, err := ParseFilter(expr)
	if err != nil {
		return nil, err
	}
	f := &Fragment{Text: expr}
	pred, err := b.compile(ast, f)
	if err != nil {
		return nil, err
	}
	f.pred = pred
	return f, nil
}

// Order parses and validates an ORDER BY body and normalizes it to
// "column DIR, column DIR".
func (b *Builder) Order(expr string) (*Fragment, error) {
	items, err := ParseOrder(expr)
	if err != nil {
		return nil, err
	}
	f := &Fragment{}
	terms := make([]string, 0, len(items))
	for _, it := range items {
		col, _, err := b.catalog.Lookup(it.Column)
		if err != nil {
			return nil, err
		}
		f.addColumn(col)
		terms = append(terms, col+" "+it.Direction)
		f.orderBy = append(f.orderBy, quoteIdent(col)+" "+it.Direction)
	}
	f.Text = strings.Join(terms, ", ")
	return f, nil
}

// Limit validates a LIMIT body.
func (b *Builder) Limit(expr string) (*Fragment, error) {
	n, err := validate.Limit(expr)
	if err != nil {
		return nil, err
	}
	return &Fragment{Text: strconv.Itoa(n), limit: uint64(n)}, nil
}

func (f *Fragment) addColumn(col string) {
	for _, c := range f.Columns {
		if c == col {
			return
		}
	}
	f.Columns = append(f.Columns, col)
}

func (b *Builder) compile(e Expr, f *Fragment) (sq.Sqlizer, error) {
	switch n := e.(type) {
	case *BinaryLogicExpr:
		left, err := b.compile(n.Left, f)
		if err != nil {
			return nil, err
		}
		right, err := b.compile(n.Right, f)
		if err != nil {
			return nil, err
		}
		if n.Op == LogicOr {
			return sq.Or{left, right}, nil
		}
		return sq.And{left, right}, nil

	case *NotExpr:
		inner, err := b.compile(n.Inner, f)
		if err != nil {
			return nil, err
		}
		return notExpr{inner}, nil

	case *NullCheckExpr:
		col, _, err := b.catalog.Lookup(n.Column)
		if err != nil {
			return nil, err
		}
		f.addColumn(col)
		if n.Negated {
			return sq.NotEq{quoteIdent(col): nil}, nil
		}
		return sq.Eq{quoteIdent(col): nil}, nil

	case *ComparisonExpr:
		col, kind, err := b.catalog.Lookup(n.Column)
		if err != nil {
			return nil, err
		}
		f.addColumn(col)
		if err := b.rejectColumnValue(n.Value); err != nil {
			return nil, err
		}
		val, err := bindValue(col, kind, n.Value)
		if err != nil {
			return nil, err
		}
		return comparison(quoteIdent(col), n.Op, val), nil
	}
	return nil, fmt.Errorf("%w: unsupported expression %T", ErrInvalidFilter, e)
}

// rejectColumnValue refuses an unquoted value that names a column. Values
// are always literals, so "name = cuisine" would compare against the word.
func (b *Builder) rejectColumnValue(lit Literal) error {
	if lit.Quoted {
		return nil
	}
	col, _, err := b.catalog.Lookup(lit.Raw)
	if err != nil {
		return nil
	}
	return newParseErrorf(ErrInvalidFilter, lit.Pos,
		"%s is a column and cannot be compared against; quote it ('%s') to match the word", col, lit.Raw)
}

// bindValue runs the value through the validator for the column's kind.
// Dates are bound in storage form so they compare against stored values.
func bindValue(col string, kind Kind, lit Literal) (any, error) {
	switch kind {
	case KindRating:
		v, err := validate.Rating(lit.Raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", col, err)
		}
		return v, nil
	case KindDate:
		v, err := validate.Date(lit.Raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", col, err)
		}
		return v, nil
	default:
		return lit.Raw, nil
	}
}

func comparison(col string, op CompOp, val any) sq.Sqlizer {
	switch op {
	case CompNEQ:
		return sq.NotEq{col: val}
	case CompLT:
		return sq.Lt{col: val}
	case CompLTE:
		return sq.LtOrEq{col: val}
	case CompGT:
		return sq.Gt{col: val}
	case CompGTE:
		return sq.GtOrEq{col: val}
	case CompLike:
		return sq.Like{col: val}
	case CompNotLike:
		return sq.NotLike{col: val}
	default:
		return sq.Eq{col: val}
	}
}

type notExpr struct {
	inner sq.Sqlizer
}

func (n notExpr) ToSql() (string, []any, error) {
	sql, args, err := n.inner.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "NOT (" + sql + ")", args, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
