package recipes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/llm"
	"recipehub/internal/middleware"
	"recipehub/internal/sync"
	"recipehub/pkg/models"
)

type Handler struct {
	Repo *Repo
	// AI is nil when no model provider is configured; the generate and
	// search endpoints then answer 503.
	AI  *llm.RecipeService
	Hub *sync.Hub
}

func NewHandler(repo *Repo, ai *llm.RecipeService, hub *sync.Hub) *Handler {
	return &Handler{Repo: repo, AI: ai, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recipes", h.list)
	rg.POST("/recipes", h.create)
	rg.GET("/recipes/:id", h.get)
	rg.DELETE("/recipes/:id", h.delete)
	rg.POST("/generate-recipe", h.generate)
	rg.POST("/search-recipes", h.search)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Log(c).Error("list recipes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.Log(c).Error("get recipe failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recipe"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

type createReq struct {
	Name         string              `json:"name"`
	Ingredients  *models.Ingredients `json:"ingredients"`
	Instructions *string             `json:"instructions"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if req.Ingredients == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients required"})
		return
	}
	if req.Instructions == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instructions required"})
		return
	}

	rec, err := h.Repo.Create(c.Request.Context(), models.Recipe{
		Name:         name,
		Ingredients:  *req.Ingredients,
		Instructions: *req.Instructions,
	})
	if err != nil {
		middleware.Log(c).Error("create recipe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add recipe"})
		return
	}

	h.publishCreated(*rec)
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe added successfully", "recipe": rec})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.Log(c).Error("delete recipe failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	ev := sync.NewEvent(sync.RecipeDeleted)
	ev.RecipeID = id
	h.Hub.Publish(ev)

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

type generateReq struct {
	Name string `json:"name"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe name is required"})
		return
	}
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe generation is not configured"})
		return
	}

	draft, err := h.AI.Generate(c.Request.Context(), name)
	if err != nil {
		middleware.Log(c).Error("generate recipe failed", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Repo.Create(c.Request.Context(), draft.Recipe())
	if err != nil {
		middleware.Log(c).Error("save generated recipe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.publishCreated(*rec)
	c.JSON(http.StatusOK, gin.H{"message": "Recipe generated successfully", "recipe": rec})
}

type searchReq struct {
	Query string `json:"query"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe search is not configured"})
		return
	}

	drafts, err := h.AI.Suggest(c.Request.Context(), query)
	if err != nil {
		middleware.Log(c).Error("search recipes failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recs := make([]models.Recipe, len(drafts))
	for i, d := range drafts {
		recs[i] = d.Recipe()
	}
	saved, err := h.Repo.CreateMany(c.Request.Context(), recs)
	if err != nil {
		middleware.Log(c).Error("save suggested recipes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for _, rec := range saved {
		h.publishCreated(rec)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipes found successfully", "recipes": saved})
}

func (h *Handler) publishCreated(rec models.Recipe) {
	ev := sync.NewEvent(sync.RecipeCreated)
	ev.RecipeID = rec.ID
	ev.Name = rec.Name
	h.Hub.Publish(ev)
}
