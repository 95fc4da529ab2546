package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

func TestRating(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{name: "integer in range", input: "3", want: 3.0},
		{name: "lower bound", input: "1", want: 1.0},
		{name: "upper bound", input: "5.0", want: 5.0},
		{name: "fraction", input: "4.5", want: 4.5},
		{name: "surrounding spaces", input: " 2 ", want: 2.0},
		{name: "above range", input: "5.2", wantErr: types.ErrInvalidRating},
		{name: "below range", input: "0.99", wantErr: types.ErrInvalidRating},
		{name: "negative", input: "-3", wantErr: types.ErrInvalidRating},
		{name: "not a number", input: "Great!", wantErr: types.ErrInvalidRating},
		{name: "empty", input: "", wantErr: types.ErrInvalidRating},
		{name: "nan", input: "NaN", wantErr: types.ErrInvalidRating},
		{name: "infinity", input: "Inf", wantErr: types.ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rating(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid date", input: "01/11/2022", want: "2022-11-01"},
		{name: "leap day", input: "29/02/2024", want: "2024-02-29"},
		{name: "end of month", input: "31/12/1999", want: "1999-12-31"},
		{name: "february 30", input: "30/02/2022", wantErr: types.ErrDateOutOfRange},
		{name: "non-leap february 29", input: "29/02/2023", wantErr: types.ErrDateOutOfRange},
		{name: "april 31", input: "31/04/2022", wantErr: types.ErrDateOutOfRange},
		{name: "year first", input: "2022/11/01", wantErr: types.ErrInvalidDateFormat},
		{name: "plain word", input: "date", wantErr: types.ErrInvalidDateFormat},
		{name: "free text", input: "not right", wantErr: types.ErrInvalidDateFormat},
		{name: "day 32", input: "32/01/2025", wantErr: types.ErrInvalidDateFormat},
		{name: "month 13", input: "01/13/2025", wantErr: types.ErrInvalidDateFormat},
		{name: "dashes", input: "01-11-2022", wantErr: types.ErrInvalidDateFormat},
		{name: "two digit year", input: "01/11/22", wantErr: types.ErrInvalidDateFormat},
		{name: "trailing junk", input: "01/11/2022x", wantErr: types.ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateErrorKindsAreDistinct(t *testing.T) {
	_, shapeErr := Date("2022/11/01")
	_, rangeErr := Date("30/02/2022")
	assert.NotErrorIs(t, shapeErr, types.ErrDateOutOfRange)
	assert.NotErrorIs(t, rangeErr, types.ErrInvalidDateFormat)
}

func TestLimit(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "25", want: 25},
		{input: " 7 ", want: 7},
		{input: "0", wantErr: true},
		{input: "-4", wantErr: true},
		{input: "2.5", wantErr: true},
		{input: "ten", wantErr: true},
		{input: "", wantErr: true},
		{input: "5; DROP TABLE menu", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Limit(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidLimit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText(t *testing.T) {
	got, err := Text("spaghetti bolognese")
	require.NoError(t, err)
	assert.Equal(t, "spaghetti bolognese", got, "text is not case-normalized")

	_, err = Text("")
	assert.ErrorIs(t, err, types.ErrEmptyText)

	_, err = Text("   ")
	assert.ErrorIs(t, err, types.ErrEmptyText)
}
