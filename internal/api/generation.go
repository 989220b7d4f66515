package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// GenerationHandler serves the text generation endpoints
type GenerationHandler struct {
	generation service.IGenerationService
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(generation service.IGenerationService) *GenerationHandler {
	return &GenerationHandler{generation: generation}
}

// GenerateRecipe creates recipe text from a list of ingredients
func (h *GenerationHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.generation.GenerateRecipe(c.Request.Context(), req.Ingredients, req.Allergies, req.Servings.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// GenerateNamedRecipe creates recipe text for a dish name
func (h *GenerationHandler) GenerateNamedRecipe(c *gin.Context) {
	var req types.GenerateNamedRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.generation.GenerateNamedRecipe(c.Request.Context(), req.RecipeName, req.Allergies, req.Servings.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Substitute suggests one replacement for an ingredient
func (h *GenerationHandler) Substitute(c *gin.Context) {
	var req types.SubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	substitute, err := h.generation.SuggestSubstitute(c.Request.Context(), req.Ingredient, req.Allergies, req.AlreadyUsed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"substitute": substitute})
}

// Substitutes suggests five replacements for an ingredient
func (h *GenerationHandler) Substitutes(c *gin.Context) {
	var req types.SubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	substitute, err := h.generation.SuggestSubstitutes(c.Request.Context(), req.Ingredient, req.Allergies, req.AlreadyUsed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"substitute": substitute})
}

// UpdateServings rescales a recipe text
func (h *GenerationHandler) UpdateServings(c *gin.Context) {
	var req types.UpdateServingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.generation.AdjustServings(c.Request.Context(), req.Recipe, req.Servings.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedRecipe": updated})
}
