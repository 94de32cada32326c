package stores

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/geo"
	"recipehub/internal/geocode"
	"recipehub/internal/middleware"
	"recipehub/internal/sync"
)

// Geocoder resolves a postcode to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, postcode string) (geo.Point, error)
}

type Handler struct {
	Repo     *Repo
	Geocoder Geocoder
	Hub      *sync.Hub
}

func NewHandler(repo *Repo, gc Geocoder, hub *sync.Hub) *Handler {
	return &Handler{Repo: repo, Geocoder: gc, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores", h.list)
	rg.POST("/initialize-stores", h.initialize)
	rg.POST("/find-nearest-stores", h.nearest)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Log(c).Error("list stores failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stores"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) initialize(c *gin.Context) {
	seeded := SeedStores()
	if err := h.Repo.ReplaceAll(c.Request.Context(), seeded); err != nil {
		middleware.Log(c).Error("initialize stores failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ev := sync.NewEvent(sync.StoresInitialized)
	ev.Count = len(seeded)
	h.Hub.Publish(ev)

	c.JSON(http.StatusOK, gin.H{"message": "Stores initialized successfully"})
}

type nearestReq struct {
	Postcode string `json:"postcode"`
}

func (h *Handler) nearest(c *gin.Context) {
	var req nearestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	postcode := strings.TrimSpace(req.Postcode)
	if postcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Postcode is required"})
		return
	}

	origin, err := h.Geocoder.Lookup(c.Request.Context(), postcode)
	if err != nil {
		if errors.Is(err, geocode.ErrPostcodeNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find location for the provided postcode"})
			return
		}
		middleware.Log(c).Error("postcode lookup failed", zap.String("postcode", postcode), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	located, err := h.Repo.ListWithCoords(c.Request.Context())
	if err != nil {
		middleware.Log(c).Error("list stores failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": geo.RankByDistance(origin, located)})
}
