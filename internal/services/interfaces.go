package services

import (
	"context"

	"cookbook/internal/models"
	"cookbook/internal/pagination"
)

// RecipeSummary is a recipe annotated with the requesting user's favorite
// status. Scanned directly from the hybrid owned-or-favorited queries.
type RecipeSummary struct {
	models.Recipe `gorm:"embedded"`
	IsFavorite    bool `gorm:"column:is_favorite" json:"is_favorite"`
}

// RecipeDetail is a full recipe with its ingredient rows and favorite status.
type RecipeDetail struct {
	models.Recipe
	IsFavorite bool `json:"is_favorite"`
}

// PantryMatch is a pantry-search hit: the recipe plus how many of the given
// ingredient tokens it matched. Higher counts rank first.
type PantryMatch struct {
	models.Recipe `gorm:"embedded"`
	MatchCount    int  `gorm:"column:match_count" json:"match_count"`
	IsFavorite    bool `gorm:"column:is_favorite" json:"is_favorite"`
}

// CategorySummary is a category annotated with the requesting user's
// favorite status.
type CategorySummary struct {
	models.Category `gorm:"embedded"`
	IsFavorite      bool `gorm:"column:is_favorite" json:"is_favorite"`
}

// RecipeFilter holds optional predicates for filtered search. A zero-valued
// field adds no predicate; supplied fields are combined conjunctively.
type RecipeFilter struct {
	Term       string
	MaxMinutes int
	Servings   string
	CategoryID string
}

// RecipeServicer defines the contract for recipe-related business logic.
type RecipeServicer interface {
	CreateRecipe(ownerID string, draft models.RecipeDraft) (*models.Recipe, error)
	UpdateRecipe(ownerID, recipeID string, draft models.RecipeDraft) (*models.Recipe, error)
	DeleteRecipe(ownerID, recipeID string) error
	GetRecipe(userID, recipeID string) (*RecipeDetail, error)
	ListForUser(userID string, page pagination.PageRequest) (*pagination.PageResponse[RecipeSummary], error)
	ToggleFavorite(userID, recipeID string) (bool, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListForUser(userID string) ([]CategorySummary, error)
	CreateCategory(ownerID, name, icon string) (*models.Category, error)
	UpdateCategory(ownerID, categoryID, name, icon string) (*models.Category, error)
	DeleteCategory(ownerID, categoryID string) error
	ToggleFavoriteCascade(userID, categoryID string) (bool, error)
}

// SearchServicer defines the contract for read-only recipe search.
type SearchServicer interface {
	SearchRecipes(userID string, filter RecipeFilter) ([]RecipeSummary, error)
	SearchByPantry(userID string, ingredientTokens []string) ([]PantryMatch, error)
}

// ImportServicer defines the contract for the recipe import pipeline. The
// returned draft lives in memory only; persisting it is a separate, explicit
// recipe create or update.
type ImportServicer interface {
	ImportFromURL(ctx context.Context, url string) (*models.RecipeDraft, error)
}
