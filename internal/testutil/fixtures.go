package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cookbook/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		FullName: "Test User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category owned by the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, ownerID string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:    fmt.Sprintf("Category %d", nextID()),
		OwnerID: &ownerID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateNativeCategory creates a system-provided category with no owner,
// as the seed migration would.
func CreateNativeCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create native category: %v", err)
	}
	return category
}

// CreateTestRecipe creates a recipe with the given ingredients for an owner.
// Pass a nil categoryID for an uncategorized recipe.
func CreateTestRecipe(t *testing.T, db *gorm.DB, ownerID string, categoryID *string, title string, ingredients ...models.IngredientDraft) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		OwnerID:      ownerID,
		CategoryID:   categoryID,
		Title:        title,
		PrepMinutes:  30,
		Servings:     "4",
		Instructions: "Mix everything and bake.",
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}

	for _, ing := range ingredients {
		row := &models.Ingredient{
			RecipeID: recipe.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to create test ingredient: %v", err)
		}
		recipe.Ingredients = append(recipe.Ingredients, *row)
	}
	return recipe
}

// DraftFixture returns a valid recipe draft with the given ingredient names.
func DraftFixture(title string, ingredientNames ...string) models.RecipeDraft {
	draft := models.RecipeDraft{
		Title:        title,
		PrepMinutes:  45,
		Servings:     "6",
		Instructions: "Step one.\nStep two.",
	}
	for _, name := range ingredientNames {
		draft.Ingredients = append(draft.Ingredients, models.IngredientDraft{Name: name})
	}
	return draft
}
