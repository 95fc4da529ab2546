package types

// Standard table names in the recipe store.
const (
	MenuTable         = "menu"
	MealPlanTable     = "meal_plan"
	IngredientsTable  = "ingredients"
	InstructionsTable = "instructions"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	MenuTable,
	MealPlanTable,
	IngredientsTable,
	InstructionsTable,
}
