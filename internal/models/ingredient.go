package models

// Ingredient is a detail row of exactly one recipe. Rows are never addressed
// individually: updates replace a recipe's whole ingredient set. Quantity and
// unit are free text; imported ingredients arrive with both empty.
type Ingredient struct {
	Base
	RecipeID string `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name     string `gorm:"not null" json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}
