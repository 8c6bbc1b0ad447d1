package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const version = "3.0.0"

// NewRouter wires every route onto a gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Day Planner API",
			"version": version,
		})
	})
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Planner Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/workers", h.ListWorkers)
		api.POST("/workers", h.CreateWorker)
		api.PUT("/workers/:id", h.UpdateWorker)
		api.DELETE("/workers/:id", h.DeleteWorker)
		api.POST("/workers/import", h.ImportWorkers)

		api.GET("/templates", h.ListTemplates)
		api.POST("/templates", h.UploadTemplate)

		api.POST("/roster", h.GenerateRoster)
		api.GET("/roster/:id", h.GetRoster)
		api.GET("/roster/:id/xlsx", h.RosterXLSX)

		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
