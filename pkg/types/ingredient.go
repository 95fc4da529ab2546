package types

// Ingredient is one row of a recipe's ingredient list.
type Ingredient struct {
	ID       int64  `json:"id"`
	RecipeID int64  `json:"recipe_id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	BatchID  string `json:"batch_id"`
}

// Instruction is one numbered step of a recipe's method.
type Instruction struct {
	ID       int64  `json:"id"`
	RecipeID int64  `json:"recipe_id"`
	Step     int    `json:"step"`
	Text     string `json:"text"`
	BatchID  string `json:"batch_id"`
}
