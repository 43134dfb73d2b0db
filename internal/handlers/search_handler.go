package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "cookbook/internal/errors"
	"cookbook/internal/services"
)

// SearchHandler handles recipe search requests
type SearchHandler struct {
	searchService services.SearchServicer
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService services.SearchServicer) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchQuery holds the filtered-search query parameters. Absent parameters
// add no predicate.
type SearchQuery struct {
	Term       string `form:"term"`
	MaxMinutes int    `form:"max_minutes" binding:"omitempty,min=1"`
	Servings   string `form:"servings"`
	CategoryID string `form:"category_id"`
}

// SearchRecipes handles multi-predicate filtered search.
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recipes, err := h.searchService.SearchRecipes(userID, services.RecipeFilter{
		Term:       query.Term,
		MaxMinutes: query.MaxMinutes,
		Servings:   query.Servings,
		CategoryID: query.CategoryID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SearchByPantry handles relevance-ranked search by a comma-separated list
// of ingredient names the user has on hand.
func (h *SearchHandler) SearchByPantry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	raw := c.Query("ingredients")
	if strings.TrimSpace(raw) == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "ingredients parameter is required"))
		return
	}

	matches, err := h.searchService.SearchByPantry(userID, strings.Split(raw, ","))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": matches})
}
