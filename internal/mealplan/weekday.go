package mealplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/resippy/internal/query"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

// abbreviations maps accepted short forms to full weekday names. Full names
// are resolved separately.
var abbreviations = map[string]string{
	"mon":   "Monday",
	"tue":   "Tuesday",
	"tues":  "Tuesday",
	"wed":   "Wednesday",
	"thu":   "Thursday",
	"thur":  "Thursday",
	"thurs": "Thursday",
	"fri":   "Friday",
	"sat":   "Saturday",
	"sun":   "Sunday",
}

// buildWeekdayIndex maps each slot key to its time.Weekday.
func buildWeekdayIndex() map[string]time.Weekday {
	idx := make(map[string]time.Weekday, len(types.Weekdays))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		idx[wd.String()] = wd
	}
	return idx
}

// ResolveWeekday normalizes a user-typed weekday to its slot key, such as
// "wednesday" or "Wed" to "Wednesday".
func ResolveWeekday(name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, wd := range types.Weekdays {
		if strings.ToLower(wd) == s {
			return wd, nil
		}
	}
	if full, ok := abbreviations[s]; ok {
		return full, nil
	}
	if hint := query.Suggest(s, lowerWeekdays()); hint != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", types.ErrUnknownWeekday, name, hint)
	}
	return "", fmt.Errorf("%w %q", types.ErrUnknownWeekday, name)
}

func lowerWeekdays() []string {
	out := make([]string, len(types.Weekdays))
	for i, wd := range types.Weekdays {
		out[i] = strings.ToLower(wd)
	}
	return out
}

// NextOccurrence returns midnight of the next date strictly after today that
// falls on wd. When today is already wd the result is a week ahead.
func NextOccurrence(today time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return types.StartOfDay(today).AddDate(0, 0, offset)
}
