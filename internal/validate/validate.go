// Package validate checks user-supplied values for ratings, dates, limits,
// and free text before they reach the store or the query builder.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// InputDateLayout is the day/month/year form accepted from users.
const InputDateLayout = "02/01/2006"

// dateShape accepts DD/MM/YYYY with a plausible day and month. Combinations
// that pass the shape but not the calendar (30/02) are rejected later as
// out of range.
var dateShape = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/([0-9]{4})$`)

// Rating parses s as a real number in [1.0, 5.0].
func Rating(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidRating, s)
	}
	// NaN fails both comparisons and is rejected here.
	if !(v >= types.MinRating && v <= types.MaxRating) {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidRating, s)
	}
	return v, nil
}

// Date parses s as DD/MM/YYYY and returns it normalized to YYYY-MM-DD.
func Date(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(types.DateLayout), nil
}

// ParseDate parses s as DD/MM/YYYY in the local time zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dateShape.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", types.ErrInvalidDateFormat, s)
	}
	t, err := time.ParseInLocation(InputDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", types.ErrDateOutOfRange, s)
	}
	return t, nil
}

// Limit parses s as an integer of at least 1.
func Limit(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidLimit, s)
	}
	return n, nil
}

// Text accepts any string that is not blank. It does not normalize case;
// callers title-case identity fields themselves.
func Text(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", types.ErrEmptyText
	}
	return s, nil
}
