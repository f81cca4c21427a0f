package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	router.GET("/health", healthCheckHandler(c))

	catalog := router.Group("/catalog")
	{
		setupAuthorRoutes(catalog, c)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(catalog *gin.RouterGroup, c *container.Container) {
	c.AuthorHandler.RegisterRoutes(catalog)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		services := gin.H{}
		for name, err := range c.Ping(pingCtx) {
			if err != nil {
				status = http.StatusServiceUnavailable
				services[name] = gin.H{"status": "down", "error": err.Error()}
				continue
			}
			services[name] = gin.H{"status": "up"}
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}

		ctx.JSON(status, gin.H{
			"status":    state,
			"driver":    c.Config.Store.Driver,
			"version":   c.Config.App.Version,
			"services":  services,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
