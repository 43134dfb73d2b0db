package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "cookbook/internal/errors"
	"cookbook/internal/models"
	"cookbook/internal/pagination"
)

// recipeService handles recipe-related business logic. Every mutation runs
// inside one bounded transaction: a recipe header is never observable
// without its ingredient rows, and vice versa.
type recipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeServicer.
func NewRecipeService(db *gorm.DB) RecipeServicer {
	return &recipeService{db: db}
}

// validateDraft enforces the basic draft constraints shared by create and
// update: a recipe must have a non-blank title and instructions.
func validateDraft(draft models.RecipeDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "recipe title is required")
	}
	if strings.TrimSpace(draft.Instructions) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "recipe instructions are required")
	}
	return nil
}

// checkCategory verifies that a draft's category reference, when set, points
// at an existing category. Any category qualifies regardless of its owner.
func checkCategory(tx *gorm.DB, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	var category models.Category
	if err := tx.First(&category, "id = ?", *categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ingredientRows materializes a draft's ingredient set for a recipe id.
func ingredientRows(recipeID string, drafts []models.IngredientDraft) []models.Ingredient {
	rows := make([]models.Ingredient, 0, len(drafts))
	for _, d := range drafts {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		rows = append(rows, models.Ingredient{
			RecipeID: recipeID,
			Name:     name,
			Quantity: d.Quantity,
			Unit:     d.Unit,
		})
	}
	return rows
}

// CreateRecipe inserts the recipe header and its full ingredient set in one
// transaction. A failure on any ingredient rolls back the header too.
func (s *recipeService) CreateRecipe(ownerID string, draft models.RecipeDraft) (*models.Recipe, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		OwnerID:      ownerID,
		CategoryID:   draft.CategoryID,
		Title:        strings.TrimSpace(draft.Title),
		PrepMinutes:  draft.PrepMinutes,
		Servings:     draft.Servings,
		Instructions: draft.Instructions,
		Notes:        draft.Notes,
		Source:       draft.Source,
		ImageRef:     draft.ImageRef,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(tx, draft.CategoryID); err != nil {
			return err
		}
		if err := tx.Create(recipe).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if rows := ingredientRows(recipe.ID, draft.Ingredients); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			recipe.Ingredients = rows
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe replaces the header fields and the entire ingredient set in
// one transaction. The old ingredient rows are deleted, not diffed. A
// non-owner gets the same not-found error as a nonexistent id and nothing
// is mutated.
func (s *recipeService) UpdateRecipe(ownerID, recipeID string, draft models.RecipeDraft) (*models.Recipe, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ? AND owner_id = ?", recipeID, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRecipeNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := checkCategory(tx, draft.CategoryID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"category_id":  draft.CategoryID,
			"title":        strings.TrimSpace(draft.Title),
			"prep_minutes": draft.PrepMinutes,
			"servings":     draft.Servings,
			"instructions": draft.Instructions,
			"notes":        draft.Notes,
			"source":       draft.Source,
			"image_ref":    draft.ImageRef,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rows := ingredientRows(recipe.ID, draft.Ingredients)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		recipe.Ingredients = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes the recipe with its ingredient rows and favorite
// markers in the same transaction. Ownership-gated like UpdateRecipe; the
// SQL schema carries matching ON DELETE CASCADE rules, mirrored here so the
// invariant holds on stores that don't enforce them.
func (s *recipeService) DeleteRecipe(ownerID, recipeID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ? AND owner_id = ?", recipeID, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRecipeNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetRecipe retrieves a recipe with its ingredients and the requesting
// user's favorite status. Reads are not owner-scoped.
func (s *recipeService) GetRecipe(userID, recipeID string) (*RecipeDetail, error) {
	var recipe models.Recipe
	if err := s.db.Preload("Ingredients").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var favorites int64
	if err := s.db.Model(&models.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&favorites).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &RecipeDetail{Recipe: recipe, IsFavorite: favorites > 0}, nil
}

// ListForUser returns the union of recipes the user owns and recipes the
// user has favorited, newest first, each annotated with is_favorite.
func (s *recipeService) ListForUser(userID string, page pagination.PageRequest) (*pagination.PageResponse[RecipeSummary], error) {
	page.Defaults()

	join := s.db.Table("recipes").
		Joins("LEFT JOIN favorite_recipes fr ON fr.recipe_id = recipes.id AND fr.user_id = ?", userID).
		Where("recipes.owner_id = ? OR fr.user_id IS NOT NULL", userID)

	var totalItems int64
	if err := join.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recipes []RecipeSummary
	if err := join.
		Select("recipes.*, CASE WHEN fr.user_id IS NOT NULL THEN 1 ELSE 0 END AS is_favorite").
		Order("recipes.created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&recipes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(recipes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ToggleFavorite flips the (user, recipe) favorite marker: insert when
// absent, delete when present. Returns the new state. The marker is a set
// membership, so toggling twice always restores the starting point.
func (s *recipeService) ToggleFavorite(userID, recipeID string) (bool, error) {
	var state bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRecipeNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var favorite models.FavoriteRecipe
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&favorite).Error
		switch {
		case err == nil:
			if err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
				Delete(&models.FavoriteRecipe{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			state = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			state = true
		default:
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return state, nil
}
