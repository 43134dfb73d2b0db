package models

// Recipe is the catalog's central entity. It always has exactly one owner;
// the category is optional and may belong to anyone (including the native
// set). Deleting the category leaves the recipe uncategorized.
type Recipe struct {
	Base
	OwnerID      string  `gorm:"type:uuid;not null;index" json:"owner_id"`
	CategoryID   *string `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Title        string  `gorm:"not null" json:"title"`
	PrepMinutes  int     `json:"prep_minutes"`
	Servings     string  `json:"servings"`
	Instructions string  `gorm:"not null" json:"instructions"`
	Notes        string  `json:"notes"`
	Source       string  `json:"source"`
	ImageRef     string  `json:"image_ref"`

	Owner       *User        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Category    *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}
