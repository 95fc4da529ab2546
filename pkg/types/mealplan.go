package types

import (
	"errors"
	"time"
)

// Weekdays lists the seven meal-plan slot keys, Monday first.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// SlotState describes where a meal-plan slot sits in its lifecycle.
type SlotState int

// Slot states. A slot moves Empty -> Scheduled, stays Scheduled while it is
// overwritten, becomes Expired once its date passes, and returns to
// Scheduled on the next assignment.
const (
	SlotEmpty SlotState = iota
	SlotScheduled
	SlotExpired
)

// String returns the lowercase state name.
func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "empty"
	case SlotScheduled:
		return "scheduled"
	case SlotExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MealPlanSlot is one of the seven fixed weekday positions in the meal plan.
type MealPlanSlot struct {
	Weekday    string     `json:"weekday"`
	Date       *time.Time `json:"date,omitempty"`
	RecipeID   *int64     `json:"recipe_id,omitempty"`
	RecipeName string     `json:"recipe_name,omitempty"`
}

// State classifies the slot relative to today. A slot missing either its
// date or its recipe is empty; a slot dated strictly before today is expired.
func (s MealPlanSlot) State(today time.Time) SlotState {
	if s.Date == nil || s.RecipeID == nil {
		return SlotEmpty
	}
	if s.Date.Before(StartOfDay(today)) {
		return SlotExpired
	}
	return SlotScheduled
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Meal-plan errors.
var (
	ErrUnknownWeekday    = errors.New("unknown weekday")
	ErrSlotMissing       = errors.New("meal plan slot missing")
	ErrWeekdayMapCorrupt = errors.New("weekday map is corrupt")
)
