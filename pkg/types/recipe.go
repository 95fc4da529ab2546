package types

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// Column names on the menu table that are not per-rater.
const (
	ColumnID       = "id"
	ColumnName     = "name"
	ColumnDishType = "dish_type"
	ColumnCuisine  = "cuisine"
	ColumnLastMade = "last_made"
)

// ratingSuffix marks a per-rater rating column.
const ratingSuffix = "_rating"

// Rating bounds, inclusive.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Recipe represents one entry on the household menu.
type Recipe struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	DishType string             `json:"dish_type,omitempty"`
	Cuisine  string             `json:"cuisine,omitempty"`
	Ratings  map[string]float64 `json:"ratings,omitempty"` // keyed by rater
	LastMade *time.Time         `json:"last_made,omitempty"`
}

// RecipeUpdate carries the fields of a partial update. Nil fields and
// missing ratings are left unchanged.
type RecipeUpdate struct {
	DishType *string
	Cuisine  *string
	Ratings  map[string]float64
	LastMade *time.Time
}

// IsEmpty reports whether the update would change nothing.
func (u RecipeUpdate) IsEmpty() bool {
	return u.DishType == nil && u.Cuisine == nil && len(u.Ratings) == 0 && u.LastMade == nil
}

// RatingColumn returns the menu column that stores the given rater's rating.
func RatingColumn(rater string) string {
	return rater + ratingSuffix
}

// IsRatingColumn reports whether column holds a per-rater rating.
func IsRatingColumn(column string) bool {
	return strings.HasSuffix(column, ratingSuffix) && len(column) > len(ratingSuffix)
}

// RaterFromColumn returns the rater name for a rating column.
func RaterFromColumn(column string) string {
	return strings.TrimSuffix(column, ratingSuffix)
}

// Value validation errors.
var (
	ErrInvalidRating     = errors.New("rating must be a number between 1 and 5")
	ErrInvalidDateFormat = errors.New("date must be formatted as DD/MM/YYYY")
	ErrDateOutOfRange    = errors.New("date out of range for month")
	ErrInvalidLimit      = errors.New("limit must be a whole number of at least 1")
	ErrEmptyText         = errors.New("value must not be empty")
)

// Recipe operation errors.
var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrRecipeExists    = errors.New("recipe already exists")
	ErrNothingToUpdate = errors.New("nothing to update")
	ErrUnknownRater    = errors.New("unknown rater")
)
