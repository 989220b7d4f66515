package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// KitchenHandler serves the per-user ingredient list
type KitchenHandler struct {
	kitchen service.IKitchenService
}

// NewKitchenHandler creates a new KitchenHandler
func NewKitchenHandler(kitchen service.IKitchenService) *KitchenHandler {
	return &KitchenHandler{kitchen: kitchen}
}

func (h *KitchenHandler) ListIngredients(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}

	kitchen, err := h.kitchen.ListIngredients(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kitchen": kitchen})
}

func (h *KitchenHandler) AddIngredient(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}

	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ingredient, kitchen, err := h.kitchen.AddIngredient(c.Request.Context(), userID, req.Name, req.Amount, req.Measurement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ingredient": ingredient, "kitchen": kitchen})
}

func (h *KitchenHandler) UpdateIngredient(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	ingredientID, ok := pathUUID(c, "ingredientId", "ingredient")
	if !ok {
		return
	}

	var req types.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ingredient, kitchen, err := h.kitchen.UpdateIngredient(c.Request.Context(), userID, ingredientID, service.IngredientPatch{
		Name:        req.Name,
		Amount:      req.Amount,
		Measurement: req.Measurement,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient, "kitchen": kitchen})
}

func (h *KitchenHandler) RemoveIngredient(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "user")
	if !ok {
		return
	}
	ingredientID, ok := pathUUID(c, "ingredientId", "ingredient")
	if !ok {
		return
	}

	kitchen, err := h.kitchen.RemoveIngredient(c.Request.Context(), userID, ingredientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient removed", "kitchen": kitchen})
}
