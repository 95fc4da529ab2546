package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

var menuColumns = []string{
	"id", "name", "dish_type", "cuisine",
	"drumlin_rating", "ian_rating", "lina_rating", "last_made",
}

func newTestBuilder() *Builder {
	return NewBuilder(NewCatalog(types.MenuTable, menuColumns))
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog(types.MenuTable, menuColumns)

	tests := []struct {
		input    string
		wantCol  string
		wantKind Kind
	}{
		{input: "name", wantCol: "name", wantKind: KindText},
		{input: "NAME", wantCol: "name", wantKind: KindText},
		{input: "ian_rating", wantCol: "ian_rating", wantKind: KindRating},
		{input: "last_made", wantCol: "last_made", wantKind: KindDate},
		{input: "id", wantCol: "id", wantKind: KindText},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			col, kind, err := c.Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCol, col)
			assert.Equal(t, tt.wantKind, kind)
		})
	}

	assert.Equal(t, types.MenuTable, c.Table())
	assert.Equal(t, menuColumns, c.Columns())
}

func TestCatalogLookup_UnknownSuggests(t *testing.T) {
	c := NewCatalog(types.MenuTable, menuColumns)

	_, _, err := c.Lookup("cusine")
	require.ErrorIs(t, err, ErrUnknownColumn)
	assert.Contains(t, err.Error(), `did you mean "cuisine"?`)

	_, _, err = c.Lookup("zzzzzzzzzz")
	require.ErrorIs(t, err, ErrUnknownColumn)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestSuggest(t *testing.T) {
	columns := []string{"id", "name", "cuisine", "ian_rating", "lina_rating"}
	tests := []struct {
		input string
		want  string
	}{
		{"cusine", "cuisine"},
		{"lena_rating", "lina_rating"},
		{"nme", "name"},
		{"bianca_rating", ""},
		{"bianca", ""},
		{"xy", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.input, columns))
		})
	}
	assert.Empty(t, Suggest("bianca", []string{"drumlin", "ian", "lina"}))
}

func TestCatalog_NewRaterColumnIsRating(t *testing.T) {
	c := NewCatalog(types.MenuTable, append(menuColumns, "bianca_rating"))
	_, kind, err := c.Lookup("bianca_rating")
	require.NoError(t, err)
	assert.Equal(t, KindRating, kind)
}

func TestBuilderFilter(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		wantSQL  string
		wantArgs []any
		wantCols []string
	}{
		{
			name:     "text equality",
			expr:     "cuisine = 'Italian'",
			wantSQL:  `"cuisine" = ?`,
			wantArgs: []any{"Italian"},
			wantCols: []string{"cuisine"},
		},
		{
			name:     "bare word value",
			expr:     "dish_type = Pasta",
			wantSQL:  `"dish_type" = ?`,
			wantArgs: []any{"Pasta"},
			wantCols: []string{"dish_type"},
		},
		{
			name:     "quoted column name is a literal",
			expr:     "name = 'cuisine'",
			wantSQL:  `"name" = ?`,
			wantArgs: []any{"cuisine"},
			wantCols: []string{"name"},
		},
		{
			name:     "rating bound as float",
			expr:     "lina_rating >= 4",
			wantSQL:  `"lina_rating" >= ?`,
			wantArgs: []any{4.0},
			wantCols: []string{"lina_rating"},
		},
		{
			name:     "date normalized",
			expr:     "last_made < 01/11/2022",
			wantSQL:  `"last_made" < ?`,
			wantArgs: []any{"2022-11-01"},
			wantCols: []string{"last_made"},
		},
		{
			name:     "case-insensitive column resolves to declared name",
			expr:     "Cuisine != 'Thai'",
			wantSQL:  `"cuisine" <> ?`,
			wantArgs: []any{"Thai"},
			wantCols: []string{"cuisine"},
		},
		{
			name:     "and of two columns",
			expr:     "ian_rating > 3 AND cuisine LIKE '%an'",
			wantSQL:  `("ian_rating" > ? AND "cuisine" LIKE ?)`,
			wantArgs: []any{3.0, "%an"},
			wantCols: []string{"ian_rating", "cuisine"},
		},
		{
			name:     "or with not",
			expr:     "not name = 'Soup' or drumlin_rating <= 2",
			wantSQL:  `(NOT ("name" = ?) OR "drumlin_rating" <= ?)`,
			wantArgs: []any{"Soup", 2.0},
			wantCols: []string{"name", "drumlin_rating"},
		},
		{
			name:     "is null",
			expr:     "last_made IS NULL",
			wantSQL:  `"last_made" IS NULL`,
			wantCols: []string{"last_made"},
		},
		{
			name:     "is not null",
			expr:     "ian_rating is not null",
			wantSQL:  `"ian_rating" IS NOT NULL`,
			wantCols: []string{"ian_rating"},
		},
		{
			name:     "repeated column listed once",
			expr:     "ian_rating > 2 and ian_rating < 5",
			wantSQL:  `("ian_rating" > ? AND "ian_rating" < ?)`,
			wantArgs: []any{2.0, 5.0},
			wantCols: []string{"ian_rating"},
		},
	}

	b := newTestBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := b.Filter(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.Text, "fragment text is the original expression")
			assert.Equal(t, tt.wantCols, f.Columns)

			sql, args, err := f.pred.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestBuilderFilter_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{name: "unknown rater column", expr: "bianca_rating = 5", wantErr: ErrUnknownColumn},
		{name: "unknown column in second clause", expr: "name = 'x' and colour = 'red'", wantErr: ErrUnknownColumn},
		{name: "unknown column under not", expr: "not nope is null", wantErr: ErrUnknownColumn},
		{name: "rating out of range", expr: "ian_rating = 5.2", wantErr: types.ErrInvalidRating},
		{name: "rating not a number", expr: "ian_rating = 'Great!'", wantErr: types.ErrInvalidRating},
		{name: "date wrong shape", expr: "last_made = 2022/11/01", wantErr: types.ErrInvalidDateFormat},
		{name: "date not on calendar", expr: "last_made > '30/02/2022'", wantErr: types.ErrDateOutOfRange},
		{name: "late bad value still rejected", expr: "name = 'x' or lina_rating < 0", wantErr: types.ErrInvalidRating},
		{name: "column name as bare value", expr: "name = cuisine", wantErr: ErrInvalidFilter},
		{name: "column name as bare value any case", expr: "dish_type != Name", wantErr: ErrInvalidFilter},
		{name: "syntax", expr: "name = ", wantErr: ErrInvalidFilter},
		{name: "injection attempt", expr: "name = 'x'; DELETE FROM menu", wantErr: ErrInvalidFilter},
	}

	b := newTestBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := b.Filter(tt.expr)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuilderOrder(t *testing.T) {
	b := newTestBuilder()

	f, err := b.Order("lina_rating DESC, Name ASC,")
	require.NoError(t, err)
	assert.Equal(t, "lina_rating DESC, name ASC", f.Text)
	assert.Equal(t, []string{"lina_rating", "name"}, f.Columns)
	assert.Equal(t, []string{`"lina_rating" DESC`, `"name" ASC`}, f.orderBy)
}

func TestBuilderOrder_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{name: "lowercase direction", expr: "name asc", wantErr: ErrInvalidOrderBy},
		{name: "missing direction", expr: "name", wantErr: ErrInvalidOrderBy},
		{name: "unknown column", expr: "colour DESC", wantErr: ErrUnknownColumn},
		{name: "injection attempt", expr: "name ASC; DROP TABLE menu", wantErr: ErrInvalidOrderBy},
	}

	b := newTestBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Order(tt.expr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuilderLimit(t *testing.T) {
	b := newTestBuilder()

	f, err := b.Limit("10")
	require.NoError(t, err)
	assert.Equal(t, "10", f.Text)
	assert.Empty(t, f.Columns)

	_, err = b.Limit("0")
	assert.ErrorIs(t, err, types.ErrInvalidLimit)
	_, err = b.Limit("lots")
	assert.ErrorIs(t, err, types.ErrInvalidLimit)
}

func TestSelectionToSQL(t *testing.T) {
	b := newTestBuilder()
	filter, err := b.Filter("cuisine = 'Thai'")
	require.NoError(t, err)
	order, err := b.Order("name ASC")
	require.NoError(t, err)
	limit, err := b.Limit("5")
	require.NoError(t, err)

	cols := []string{"id", "name"}
	tests := []struct {
		name        string
		sel         Selection
		wantSQL     string
		wantArgs    []any
		wantClauses string
	}{
		{
			name:    "no clauses",
			sel:     Selection{},
			wantSQL: `SELECT "id", "name" FROM "menu"`,
		},
		{
			name:        "all clauses in order",
			sel:         Selection{Filter: filter, Order: order, Limit: limit},
			wantSQL:     `SELECT "id", "name" FROM "menu" WHERE "cuisine" = ? ORDER BY "name" ASC LIMIT 5`,
			wantArgs:    []any{"Thai"},
			wantClauses: "WHERE cuisine = 'Thai' ORDER BY name ASC LIMIT 5",
		},
		{
			name:        "order and limit only",
			sel:         Selection{Order: order, Limit: limit},
			wantSQL:     `SELECT "id", "name" FROM "menu" ORDER BY "name" ASC LIMIT 5`,
			wantClauses: "ORDER BY name ASC LIMIT 5",
		},
		{
			name:        "filter and limit",
			sel:         Selection{Filter: filter, Limit: limit},
			wantSQL:     `SELECT "id", "name" FROM "menu" WHERE "cuisine" = ? LIMIT 5`,
			wantArgs:    []any{"Thai"},
			wantClauses: "WHERE cuisine = 'Thai' LIMIT 5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.sel.ToSQL(types.MenuTable, cols)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, q.SQL)
			if tt.wantArgs == nil {
				assert.Empty(t, q.Args)
			} else {
				assert.Equal(t, tt.wantArgs, q.Args)
			}
			assert.Equal(t, tt.wantClauses, tt.sel.Clauses())
		})
	}
}
