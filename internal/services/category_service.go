package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "cookbook/internal/errors"
	"cookbook/internal/models"
)

// categoryService handles category-related business logic. Native categories
// (nil owner) are readable by everyone but every mutation is scoped to
// "owner_id = caller", which a NULL owner can never satisfy, so the native
// set is immutable through this service.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListForUser returns every category visible to the user: the native set,
// the user's own, and any category the user has favorited regardless of its
// owner. Each row is annotated with the user's favorite status, name order.
func (s *categoryService) ListForUser(userID string) ([]CategorySummary, error) {
	var categories []CategorySummary
	err := s.db.Table("categories").
		Select("categories.*, CASE WHEN fc.user_id IS NOT NULL THEN 1 ELSE 0 END AS is_favorite").
		Joins("LEFT JOIN favorite_categories fc ON fc.category_id = categories.id AND fc.user_id = ?", userID).
		Where("categories.owner_id IS NULL OR categories.owner_id = ? OR fc.user_id IS NOT NULL", userID).
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// CreateCategory creates a user-owned category. Name uniqueness is scoped
// per owner: two users (or a user and the native set) may share a name.
func (s *categoryService) CreateCategory(ownerID, name, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{Name: name, OwnerID: &ownerID}
	if icon != "" {
		category.Icon = icon
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory renames a category the caller owns. A non-owner (or a
// native category) gets the same not-found error as a nonexistent id.
func (s *categoryService) UpdateCategory(ownerID, categoryID, name, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var category models.Category
	if err := s.db.First(&category, "id = ? AND owner_id = ?", categoryID, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("owner_id = ? AND name = ? AND id <> ?", ownerID, name, categoryID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	updates := map[string]interface{}{"name": name}
	if icon != "" {
		updates["icon"] = icon
	}
	if err := s.db.Model(&category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// DeleteCategory removes a category the caller owns. Recipes referencing it
// are detached (category set to null), never deleted, in the same
// transaction; favorite markers for the category go with it.
func (s *categoryService) DeleteCategory(ownerID, categoryID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ? AND owner_id = ?", categoryID, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Recipe{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("category_id = ?", categoryID).
			Delete(&models.FavoriteCategory{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ToggleFavoriteCascade flips the user's favorite marker on a category and
// propagates the change to every recipe currently assigned to it, all in one
// transaction. The recipe set is a point-in-time snapshot: recipes assigned
// to the category later are not retroactively affected. Turning off removes
// only this user's recipe markers; other users' favorites are untouched.
func (s *categoryService) ToggleFavoriteCascade(userID, categoryID string) (bool, error) {
	var state bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var recipeIDs []string
		if err := tx.Model(&models.Recipe{}).
			Where("category_id = ?", categoryID).
			Pluck("id", &recipeIDs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var favorite models.FavoriteCategory
		err := tx.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&favorite).Error
		switch {
		case err == nil:
			// Turn off: drop the category marker, then this user's recipe
			// markers for the category's current members.
			if err := tx.Where("user_id = ? AND category_id = ?", userID, categoryID).
				Delete(&models.FavoriteCategory{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if len(recipeIDs) > 0 {
				if err := tx.Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
					Delete(&models.FavoriteRecipe{}).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
			state = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Turn on: insert the category marker, then insert-or-ignore a
			// recipe marker per member so pre-existing favorites stay single.
			if err := tx.Create(&models.FavoriteCategory{UserID: userID, CategoryID: categoryID}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if len(recipeIDs) > 0 {
				markers := make([]models.FavoriteRecipe, 0, len(recipeIDs))
				for _, id := range recipeIDs {
					markers = append(markers, models.FavoriteRecipe{UserID: userID, RecipeID: id})
				}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&markers).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
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
