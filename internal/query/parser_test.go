package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter_SingleComparison(t *testing.T) {
	expr, err := ParseFilter(`ian_rating > 3`)
	require.NoError(t, err)

	cmp, ok := expr.(*ComparisonExpr)
	require.True(t, ok, "expected *ComparisonExpr, got %T", expr)
	assert.Equal(t, "ian_rating", cmp.Column)
	assert.Equal(t, CompGT, cmp.Op)
	assert.Equal(t, "3", cmp.Value.Raw)
	assert.False(t, cmp.Value.Quoted)
}

func TestParseFilter_Precedence(t *testing.T) {
	// AND binds tighter than OR.
	expr, err := ParseFilter(`a = 1 or b = 2 and c = 3`)
	require.NoError(t, err)

	or, ok := expr.(*BinaryLogicExpr)
	require.True(t, ok)
	assert.Equal(t, LogicOr, or.Op)
	and, ok := or.Right.(*BinaryLogicExpr)
	require.True(t, ok)
	assert.Equal(t, LogicAnd, and.Op)
}

func TestParseFilter_ParenthesesAndNot(t *testing.T) {
	expr, err := ParseFilter(`not (a = 1 or b = 2) and c is not null`)
	require.NoError(t, err)

	and, ok := expr.(*BinaryLogicExpr)
	require.True(t, ok)
	assert.Equal(t, LogicAnd, and.Op)

	not, ok := and.Left.(*NotExpr)
	require.True(t, ok)
	_, ok = not.Inner.(*BinaryLogicExpr)
	assert.True(t, ok)

	null, ok := and.Right.(*NullCheckExpr)
	require.True(t, ok)
	assert.Equal(t, "c", null.Column)
	assert.True(t, null.Negated)
}

func TestParseFilter_LikeOperators(t *testing.T) {
	expr, err := ParseFilter(`name like '%pie%'`)
	require.NoError(t, err)
	assert.Equal(t, CompLike, expr.(*ComparisonExpr).Op)

	expr, err = ParseFilter(`name NOT LIKE "%pie%"`)
	require.NoError(t, err)
	cmp := expr.(*ComparisonExpr)
	assert.Equal(t, CompNotLike, cmp.Op)
	assert.True(t, cmp.Value.Quoted)
}

func TestParseFilter_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "missing value", input: "name ="},
		{name: "missing operator", input: "name 'Pasta'"},
		{name: "dangling and", input: "a = 1 and"},
		{name: "unclosed paren", input: "(a = 1"},
		{name: "extra paren", input: "a = 1)"},
		{name: "is without null", input: "a is 3"},
		{name: "not without like", input: "a not 3"},
		{name: "value first", input: "3 = a"},
		{name: "trailing tokens", input: "a = 1 b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []OrderItem
	}{
		{
			name:  "single term",
			input: "name ASC",
			want:  []OrderItem{{Column: "name", ColumnPos: 0, Direction: "ASC"}},
		},
		{
			name:  "two terms",
			input: "lina_rating DESC, name ASC",
			want: []OrderItem{
				{Column: "lina_rating", ColumnPos: 0, Direction: "DESC"},
				{Column: "name", ColumnPos: 18, Direction: "ASC"},
			},
		},
		{
			name:  "trailing separators trimmed",
			input: "name ASC,,",
			want:  []OrderItem{{Column: "name", ColumnPos: 0, Direction: "ASC"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrder(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "lowercase direction", input: "name asc"},
		{name: "mixed case direction", input: "name Desc"},
		{name: "missing direction", input: "name"},
		{name: "missing direction in list", input: "name ASC, cuisine"},
		{name: "extra token", input: "name ASC DESC"},
		{name: "empty middle term", input: "name ASC,, cuisine DESC"},
		{name: "leading comma", input: ", name ASC"},
		{name: "empty", input: ""},
		{name: "number as column", input: "1 ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrder(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOrderBy)
		})
	}
}
