// Package server exposes tracker.Service as a JSON API over gin.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/circumplex/internal/tracker"
)

// Setup builds the router. Every route lives under /api.
func Setup(logger *slog.Logger, svc tracker.Service, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(CORS(allowedOrigins))

	h := NewHandler(svc)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/classify", h.Classify)

	api.GET("/entries", h.ListEntries)
	api.POST("/entries", h.LogEntry)
	api.PUT("/entries/:index", h.EditEntry)
	api.DELETE("/entries/:index", h.DeleteEntry)
	api.PUT("/entries/:index/collection", h.AssignCollection)
	api.PUT("/entries/:index/tags", h.TagEntry)
	api.POST("/undo", h.Undo)

	api.GET("/stats", h.Stats)
	api.GET("/periods", h.Periods)
	api.GET("/trend", h.Trend)
	api.GET("/chart", h.Chart)

	api.GET("/export", h.Export)
	api.POST("/import", h.Import)

	api.GET("/collections", h.ListCollections)
	api.POST("/collections", h.AddCollection)
	api.DELETE("/collections/:id", h.RemoveCollection)
	api.GET("/tags", h.ListTags)

	return router
}
