package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/llm"
	"recipehub/internal/middleware"
	"recipehub/internal/recipes"
	"recipehub/internal/shopping"
	"recipehub/internal/stores"
	synchub "recipehub/internal/sync"
)

type routerDeps struct {
	DB       *sql.DB
	DBPath   string
	Hub      *synchub.Hub
	AI       *llm.RecipeService
	Geocoder stores.Geocoder
	Origins  []string
	Log      *zap.Logger
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(d.Log), middleware.CORS(d.Origins))

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", synchub.WSHandler(d.Hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": d.DBPath})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := d.Hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := d.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"llm":         d.AI != nil,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	api := router.Group("/api")

	recipeRepo := recipes.NewRepo(d.DB)
	recipes.NewHandler(recipeRepo, d.AI, d.Hub).RegisterRoutes(api)

	storeRepo := stores.NewRepo(d.DB)
	stores.NewHandler(storeRepo, d.Geocoder, d.Hub).RegisterRoutes(api)

	shopping.NewHandler(shopping.NewService(recipeRepo, storeRepo)).RegisterRoutes(api)

	return router
}
