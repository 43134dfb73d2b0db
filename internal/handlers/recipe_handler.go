package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cookbook/internal/errors"
	"cookbook/internal/models"
	"cookbook/internal/pagination"
	"cookbook/internal/services"
)

// RecipeHandler handles recipe-related requests
type RecipeHandler struct {
	recipeService services.RecipeServicer
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService services.RecipeServicer) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// IngredientRequest is one ingredient line in a recipe payload.
type IngredientRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// RecipeRequest is the payload for creating or updating a recipe. The same
// shape serves both: updates replace the recipe wholesale, including the
// full ingredient set.
type RecipeRequest struct {
	Title        string              `json:"title" binding:"required,notblank"`
	CategoryID   *string             `json:"category_id"`
	PrepMinutes  int                 `json:"prep_minutes" binding:"omitempty,min=0"`
	Servings     string              `json:"servings"`
	Instructions string              `json:"instructions" binding:"required,notblank"`
	Notes        string              `json:"notes"`
	Source       string              `json:"source"`
	ImageRef     string              `json:"image_ref"`
	Ingredients  []IngredientRequest `json:"ingredients" binding:"dive"`
}

func (r *RecipeRequest) toDraft() models.RecipeDraft {
	ingredients := make([]models.IngredientDraft, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, models.IngredientDraft{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return models.RecipeDraft{
		Title:        r.Title,
		CategoryID:   r.CategoryID,
		PrepMinutes:  r.PrepMinutes,
		Servings:     r.Servings,
		Instructions: r.Instructions,
		Notes:        r.Notes,
		Source:       r.Source,
		ImageRef:     r.ImageRef,
		Ingredients:  ingredients,
	}
}

// CreateRecipe handles the creation of a new recipe with its ingredients.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recipe, err := h.recipeService.CreateRecipe(userID, req.toDraft())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// GetRecipes handles the paginated listing of recipes the user owns or has
// favorited.
func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.recipeService.ListForUser(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecipeByID handles the retrieval of a single recipe with ingredients.
func (h *RecipeHandler) GetRecipeByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recipe, err := h.recipeService.GetRecipe(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// UpdateRecipe handles a full recipe update, replacing the ingredient set.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(userID, c.Param("id"), req.toDraft())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe handles recipe deletion.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// ToggleFavorite handles the idempotent favorite toggle for a recipe.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.recipeService.ToggleFavorite(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": state})
}
