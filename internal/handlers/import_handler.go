package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cookbook/internal/errors"
	"cookbook/internal/services"
)

// ImportHandler handles recipe import requests
type ImportHandler struct {
	importService services.ImportServicer
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService services.ImportServicer) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportRequest is the payload for importing a recipe draft from a website.
type ImportRequest struct {
	URL string `json:"url" binding:"required,notblank"`
}

// ImportRecipe fetches the URL and returns a normalized draft. Nothing is
// persisted: the client reviews the draft and submits it through the normal
// recipe create endpoint.
func (h *ImportHandler) ImportRecipe(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft, err := h.importService.ImportFromURL(c.Request.Context(), req.URL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
