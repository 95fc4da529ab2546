// Package types defines the recipe, meal-plan, and sibling-table entities,
// the store configuration, and the standard errors shared by the resippy
// packages.
package types
