package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// RecipeHandler serves the saved recipe endpoints
type RecipeHandler struct {
	recipes service.IRecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

var saveMessages = map[service.SaveOutcome]string{
	service.SaveCreated:      "Recipe created and saved successfully!",
	service.SaveAttached:     "User added to existing recipe successfully!",
	service.SaveAlreadySaved: "Recipe already saved by this user.",
}

// SaveRecipe stores a recipe for a user, reusing an identical stored recipe
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.recipes.SaveRecipe(c.Request.Context(), service.SaveRecipeInput{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		UserID:       req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if res.Created() {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"message": saveMessages[res.Outcome],
		"recipe":  res.Recipe,
	})
}

// RemoveUser detaches a user from a recipe, deleting it when nobody is left
func (h *RecipeHandler) RemoveUser(c *gin.Context) {
	var req types.RemoveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.recipes.RemoveUser(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	if res.Deleted {
		c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted as no users are associated with it."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User removed from recipe successfully.",
		"recipe":  res.Recipe,
	})
}

// GetRecipe returns a single recipe
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}
