package models

import "time"

// FavoriteCategory marks a category as favorited by a user. The composite
// primary key makes the marker an idempotent set membership, not a count.
type FavoriteCategory struct {
	UserID     string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CategoryID string    `gorm:"type:uuid;primaryKey" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides GORM's pluralization.
func (FavoriteCategory) TableName() string {
	return "favorite_categories"
}

// FavoriteRecipe marks a recipe as favorited by a user.
type FavoriteRecipe struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  string    `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides GORM's pluralization.
func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}
