package shopping

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate-shopping-list", h.calculate)
}

type calculateReq struct {
	RecipeIDs RecipeIDs `json:"recipe_ids"`
}

func (h *Handler) calculate(c *gin.Context) {
	var req calculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	res, err := h.Service.Calculate(c.Request.Context(), req.RecipeIDs)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, ErrNoRecipesSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No recipes selected"})
	case errors.Is(err, ErrRecipesNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipes found"})
	case errors.Is(err, ErrNoStores):
		c.JSON(http.StatusNotFound, gin.H{"error": "No stores found"})
	default:
		middleware.Log(c).Error("calculate shopping list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shopping list"})
	}
}
