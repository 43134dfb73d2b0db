package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "cookbook/internal/errors"
)

// searchService implements read-only recipe search over the shared store.
// Searches run outside transactions and may overlap freely with writes.
type searchService struct {
	db *gorm.DB
}

// NewSearchService creates a new SearchServicer.
func NewSearchService(db *gorm.DB) SearchServicer {
	return &searchService{db: db}
}

// SearchRecipes starts from "match everything" and conjunctively adds a
// predicate per supplied filter field: case-insensitive substring of the
// term against title or instructions, a prep-time ceiling, a servings
// substring, and exact category equality. Results are title-ordered and
// annotated with the requesting user's favorite status.
func (s *searchService) SearchRecipes(userID string, filter RecipeFilter) ([]RecipeSummary, error) {
	q := s.db.Table("recipes").
		Select("recipes.*, CASE WHEN fr.user_id IS NOT NULL THEN 1 ELSE 0 END AS is_favorite").
		Joins("LEFT JOIN favorite_recipes fr ON fr.recipe_id = recipes.id AND fr.user_id = ?", userID)
	q = applyRecipeFilters(q, filter)

	var recipes []RecipeSummary
	if err := q.Order("recipes.title ASC").Find(&recipes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recipes, nil
}

func applyRecipeFilters(q *gorm.DB, f RecipeFilter) *gorm.DB {
	if term := strings.TrimSpace(f.Term); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(recipes.title) LIKE ? OR LOWER(recipes.instructions) LIKE ?)", pattern, pattern)
	}
	if f.MaxMinutes > 0 {
		q = q.Where("recipes.prep_minutes <= ?", f.MaxMinutes)
	}
	if servings := strings.TrimSpace(f.Servings); servings != "" {
		q = q.Where("LOWER(recipes.servings) LIKE ?", "%"+strings.ToLower(servings)+"%")
	}
	if f.CategoryID != "" {
		q = q.Where("recipes.category_id = ?", f.CategoryID)
	}
	return q
}

// SearchByPantry finds recipes having at least one ingredient whose name
// exactly equals one of the given tokens, ranked by how many ingredient rows
// matched (the relevance rank), ties broken alphabetically by title.
func (s *searchService) SearchByPantry(userID string, ingredientTokens []string) ([]PantryMatch, error) {
	tokens := make([]string, 0, len(ingredientTokens))
	for _, t := range ingredientTokens {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	if len(tokens) == 0 {
		return []PantryMatch{}, nil
	}

	var matches []PantryMatch
	err := s.db.Table("recipes").
		Select("recipes.*, COUNT(ingredients.id) AS match_count, CASE WHEN fr.user_id IS NOT NULL THEN 1 ELSE 0 END AS is_favorite").
		Joins("JOIN ingredients ON ingredients.recipe_id = recipes.id").
		Joins("LEFT JOIN favorite_recipes fr ON fr.recipe_id = recipes.id AND fr.user_id = ?", userID).
		Where("ingredients.name IN ?", tokens).
		Group("recipes.id, fr.user_id").
		Order("match_count DESC, recipes.title ASC").
		Find(&matches).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return matches, nil
}
