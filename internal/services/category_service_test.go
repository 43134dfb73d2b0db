package services

import (
	"testing"

	"cookbook/internal/models"
	"cookbook/internal/testutil"
)

func TestListCategoriesForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	native := testutil.CreateNativeCategory(t, db, "Sobremesas")
	owned := testutil.CreateTestCategory(t, db, user.ID)
	foreign := testutil.CreateTestCategory(t, db, other.ID)
	favoritedForeign := testutil.CreateTestCategory(t, db, other.ID)
	testutil.AssertNoError(t, db.Create(&models.FavoriteCategory{UserID: user.ID, CategoryID: favoritedForeign.ID}).Error)

	t.Run("native plus owned plus favorited, annotated", func(t *testing.T) {
		categories, err := service.ListForUser(user.ID)
		testutil.AssertNoError(t, err)

		byID := map[string]CategorySummary{}
		for _, c := range categories {
			byID[c.ID] = c
		}
		if len(byID) != 3 {
			t.Fatalf("expected 3 visible categories, got %d", len(byID))
		}
		if _, ok := byID[native.ID]; !ok {
			t.Error("expected native category to be visible")
		}
		if _, ok := byID[owned.ID]; !ok {
			t.Error("expected owned category to be visible")
		}
		if got, ok := byID[favoritedForeign.ID]; !ok || !got.IsFavorite {
			t.Errorf("expected favorited foreign category annotated, got %+v", got)
		}
		if _, ok := byID[foreign.ID]; ok {
			t.Error("expected unfavorited foreign category to be hidden")
		}
	})

	t.Run("ordered by name", func(t *testing.T) {
		categories, err := service.ListForUser(user.ID)
		testutil.AssertNoError(t, err)
		for i := 1; i < len(categories); i++ {
			if categories[i-1].Name > categories[i].Name {
				t.Errorf("expected name order, got %q before %q", categories[i-1].Name, categories[i].Name)
			}
		}
	})
}

func TestCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	t.Run("creates with default icon", func(t *testing.T) {
		category, err := service.CreateCategory(user.ID, "Churrasco", "")
		testutil.AssertNoError(t, err)
		if category.OwnerID == nil || *category.OwnerID != user.ID {
			t.Error("expected category owned by caller")
		}
		if category.Icon != "restaurant_menu" {
			t.Errorf("expected default icon, got %q", category.Icon)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := service.CreateCategory(user.ID, "  ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects duplicate name for the same owner", func(t *testing.T) {
		_, err := service.CreateCategory(user.ID, "Marmitas", "")
		testutil.AssertNoError(t, err)
		_, err = service.CreateCategory(user.ID, "Marmitas", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same name is fine for a different owner", func(t *testing.T) {
		_, err := service.CreateCategory(user.ID, "Festa", "")
		testutil.AssertNoError(t, err)
		_, err = service.CreateCategory(other.ID, "Festa", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("may shadow a native category name", func(t *testing.T) {
		testutil.CreateNativeCategory(t, db, "Carnes")
		_, err := service.CreateCategory(user.ID, "Carnes", "")
		testutil.AssertNoError(t, err)
	})
}

func TestUpdateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	t.Run("renames owned category", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		updated, err := service.UpdateCategory(user.ID, category.ID, "Renomeada", "cake")
		testutil.AssertNoError(t, err)
		if updated.Name != "Renomeada" || updated.Icon != "cake" {
			t.Errorf("unexpected update result: %+v", updated)
		}
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		_, err := service.UpdateCategory(other.ID, category.ID, "Roubada", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("native category cannot be renamed", func(t *testing.T) {
		native := testutil.CreateNativeCategory(t, db, "Bebidas & Drinks")
		_, err := service.UpdateCategory(user.ID, native.ID, "Minha Agora", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("rejects rename onto an existing owned name", func(t *testing.T) {
		first := testutil.CreateTestCategory(t, db, user.ID)
		second := testutil.CreateTestCategory(t, db, user.ID)
		_, err := service.UpdateCategory(user.ID, second.ID, first.Name, "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("rename to its own name is allowed", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		_, err := service.UpdateCategory(user.ID, category.ID, category.Name, "")
		testutil.AssertNoError(t, err)
	})
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	t.Run("detaches recipes and drops markers", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		recipe := testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Na Categoria")
		testutil.AssertNoError(t, db.Create(&models.FavoriteCategory{UserID: other.ID, CategoryID: category.ID}).Error)

		testutil.AssertNoError(t, service.DeleteCategory(user.ID, category.ID))

		var reloaded models.Recipe
		testutil.AssertNoError(t, db.First(&reloaded, "id = ?", recipe.ID).Error)
		if reloaded.CategoryID != nil {
			t.Error("expected recipe detached, not deleted")
		}

		var categories, markers int64
		db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&categories)
		db.Model(&models.FavoriteCategory{}).Where("category_id = ?", category.ID).Count(&markers)
		if categories != 0 || markers != 0 {
			t.Errorf("expected category and markers gone, got categories=%d markers=%d", categories, markers)
		}
	})

	t.Run("native category cannot be deleted", func(t *testing.T) {
		native := testutil.CreateNativeCategory(t, db, "Prato Principal")
		err := service.DeleteCategory(user.ID, native.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		err := service.DeleteCategory(other.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestToggleFavoriteCascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	t.Run("on favorites every member recipe", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		first := testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Primeira")
		second := testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Segunda")
		testutil.CreateTestRecipe(t, db, user.ID, nil, "Fora")

		state, err := service.ToggleFavoriteCascade(user.ID, category.ID)
		testutil.AssertNoError(t, err)
		if !state {
			t.Error("expected favorite on")
		}

		var markers []models.FavoriteRecipe
		db.Where("user_id = ?", user.ID).Find(&markers)
		if len(markers) != 2 {
			t.Fatalf("expected 2 recipe markers, got %d", len(markers))
		}
		got := map[string]bool{}
		for _, m := range markers {
			got[m.RecipeID] = true
		}
		if !got[first.ID] || !got[second.ID] {
			t.Error("expected markers for both member recipes")
		}
	})

	t.Run("on keeps pre-existing recipe markers single", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		recipe := testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Já Favorita")
		testutil.AssertNoError(t, db.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID}).Error)

		_, err := service.ToggleFavoriteCascade(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.FavoriteRecipe{}).Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one marker, got %d", count)
		}
	})

	t.Run("off removes only this user's markers", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		recipe := testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Compartilhado Gosto")
		testutil.AssertNoError(t, db.Create(&models.FavoriteRecipe{UserID: other.ID, RecipeID: recipe.ID}).Error)

		_, err := service.ToggleFavoriteCascade(user.ID, category.ID)
		testutil.AssertNoError(t, err)
		state, err := service.ToggleFavoriteCascade(user.ID, category.ID)
		testutil.AssertNoError(t, err)
		if state {
			t.Error("expected favorite off after second toggle")
		}

		var mine, theirs int64
		db.Model(&models.FavoriteRecipe{}).Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&mine)
		db.Model(&models.FavoriteRecipe{}).Where("user_id = ? AND recipe_id = ?", other.ID, recipe.ID).Count(&theirs)
		if mine != 0 {
			t.Error("expected caller's marker removed")
		}
		if theirs != 1 {
			t.Error("expected other user's marker untouched")
		}
	})

	t.Run("cascade is a point-in-time snapshot", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Antes")

		_, err := service.ToggleFavoriteCascade(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		late := testutil.CreateTestRecipe(t, db, user.ID, &category.ID, "Depois")

		var count int64
		db.Model(&models.FavoriteRecipe{}).Where("user_id = ? AND recipe_id = ?", user.ID, late.ID).Count(&count)
		if count != 0 {
			t.Error("expected late recipe to not be retroactively favorited")
		}
	})

	t.Run("works on native categories too", func(t *testing.T) {
		native := testutil.CreateNativeCategory(t, db, "Café da Manhã")
		state, err := service.ToggleFavoriteCascade(user.ID, native.ID)
		testutil.AssertNoError(t, err)
		if !state {
			t.Error("expected native category to be favoritable")
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := service.ToggleFavoriteCascade(user.ID, "missing-id")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
