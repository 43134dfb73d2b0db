package models

// RecipeDraft is an in-memory candidate recipe: the output of import
// normalization or the body of a create/update request. It is persisted only
// by an explicit recipe create or update, so an abandoned import never
// touches storage.
type RecipeDraft struct {
	Title        string            `json:"title"`
	CategoryID   *string           `json:"category_id,omitempty"`
	PrepMinutes  int               `json:"prep_minutes"`
	Servings     string            `json:"servings"`
	Instructions string            `json:"instructions"`
	Notes        string            `json:"notes"`
	Source       string            `json:"source"`
	ImageRef     string            `json:"image_ref"`
	Ingredients  []IngredientDraft `json:"ingredients"`
}

// IngredientDraft is one ingredient line of a RecipeDraft.
type IngredientDraft struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}
