package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-api/internal/usecase"
)

type RecipeHandler struct {
	suggest *usecase.SuggestIngredients
}

func NewRecipeHandler(suggest *usecase.SuggestIngredients) *RecipeHandler {
	return &RecipeHandler{suggest: suggest}
}

type suggestReq struct {
	Dish string `json:"dish" binding:"required"`
}

// POST /v1/recipes/ingredients
// Always answers: a model failure silently degrades to the local table,
// flagged with fallback=true.
func (h *RecipeHandler) SuggestIngredients(c *gin.Context) {
	var req suggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	res, err := h.suggest.Execute(c.Request.Context(), req.Dish)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyDish) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dish_required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dish":        res.Dish,
		"ingredients": res.Ingredients,
		"fallback":    res.Fallback,
	})
}
