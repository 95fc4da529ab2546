// Package mealplan assigns recipes to the seven weekday slots of the meal
// plan, negotiating with the user before replacing a future assignment.
package mealplan

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/resippy/pkg/types"
)

// SlotStore is the persistence the scheduler needs.
type SlotStore interface {
	FindRecipeID(name string) (int64, error)
	ReadSlot(weekday string) (types.MealPlanSlot, error)
	WriteSlot(weekday string, date time.Time, recipeID int64) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Outcome is the non-error result of an assignment request.
type Outcome int

const (
	// Assigned means the slot now holds the requested recipe.
	Assigned Outcome = iota
	// Declined means the user kept the existing assignment.
	Declined
)

func (o Outcome) String() string {
	if o == Declined {
		return "declined"
	}
	return "assigned"
}

// Result describes a completed assignment request.
type Result struct {
	Outcome Outcome
	Weekday string
	// Date is the date written, zero when declined.
	Date time.Time
	// RecipeName is the planned recipe as the menu stores it.
	RecipeName string
	// Replaced is the scheduled slot that was overwritten or kept.
	Replaced *types.MealPlanSlot
}

// Scheduler assigns recipes to meal-plan slots.
type Scheduler struct {
	store        SlotStore
	confirm      Confirmer
	now          func() time.Time
	logger       *zap.Logger
	weekdayIndex map[string]time.Weekday
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithLogger sets the scheduler's logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler creates a scheduler over store that asks confirm before
// replacing a scheduled slot.
func NewScheduler(store SlotStore, confirm Confirmer, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:        store,
		confirm:      confirm,
		now:          time.Now,
		logger:       zap.NewNop(),
		weekdayIndex: buildWeekdayIndex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign puts recipe on the slot for weekday. The recipe must already be on
// the menu. A slot that is empty or expired is written directly; a
// scheduled slot is replaced only after the user confirms, and a refusal
// returns a Declined result with no error and no change.
func (s *Scheduler) Assign(weekday, recipe string) (Result, error) {
	day, err := ResolveWeekday(weekday)
	if err != nil {
		return Result{}, err
	}
	wd, ok := s.weekdayIndex[day]
	if !ok {
		return Result{}, fmt.Errorf("%w: no entry for %s", types.ErrWeekdayMapCorrupt, day)
	}

	recipeID, err := s.store.FindRecipeID(recipe)
	if err != nil {
		return Result{}, fmt.Errorf("finding recipe %q: %w", recipe, err)
	}

	slot, err := s.store.ReadSlot(day)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s slot: %w", day, err)
	}

	today := s.now()
	res := Result{Outcome: Assigned, Weekday: day, RecipeName: recipe}

	switch state := slot.State(today); state {
	case types.SlotScheduled:
		prev := slot
		res.Replaced = &prev
		ok, err := s.confirm.Confirm(overwriteQuestion(slot))
		if err != nil {
			return Result{}, fmt.Errorf("confirming %s overwrite: %w", day, err)
		}
		if !ok {
			s.logger.Debug("overwrite declined", zap.String("weekday", day), zap.String("kept", slot.RecipeName))
			res.Outcome = Declined
			return res, nil
		}
	default:
		s.logger.Debug("slot free", zap.String("weekday", day), zap.Stringer("state", state))
	}

	date := NextOccurrence(today, wd)
	if err := s.store.WriteSlot(day, date, recipeID); err != nil {
		return Result{}, fmt.Errorf("writing %s slot: %w", day, err)
	}
	res.Date = date
	if written, err := s.store.ReadSlot(day); err == nil && written.RecipeName != "" {
		res.RecipeName = written.RecipeName
	}
	s.logger.Info("meal planned",
		zap.String("weekday", day),
		zap.String("date", date.Format(types.DateLayout)),
		zap.String("recipe", res.RecipeName),
	)
	return res, nil
}

func overwriteQuestion(slot types.MealPlanSlot) string {
	name := slot.RecipeName
	if name == "" {
		name = fmt.Sprintf("recipe #%d", *slot.RecipeID)
	}
	return fmt.Sprintf("%s is already planned for %s %s. Would you like to replace it?",
		name, slot.Weekday, slot.Date.Format(types.DateLayout))
}
