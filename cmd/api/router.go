package main

import (
	"context"
	"net/http"
	"time"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCategoryRoutes(v1, c)
		setupProductRoutes(v1, c)
	}

	return router
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.GetAll)
		categories.GET("/:id", c.CategoryHandler.GetByID)
	}

	guarded := v1.Group("/categories")
	guarded.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		guarded.POST("", c.CategoryHandler.Create)
		guarded.PUT("/:id", c.CategoryHandler.Update)
		guarded.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
// Reads are public; mutations, imports and exports require a valid token.
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/export/columns", c.ExportHandler.Columns)
		products.GET("/:id", c.ProductHandler.GetByID)
	}

	guarded := v1.Group("/products")
	guarded.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		guarded.POST("", c.ProductHandler.Create)
		guarded.PUT("/:id", c.ProductHandler.Update)
		guarded.PATCH("/:id/archive", c.ProductHandler.SetArchived)
		guarded.DELETE("/:id", c.ProductHandler.Delete)

		guarded.POST("/import", c.ImportHandler.Import)
		guarded.POST("/import/async", c.ImportHandler.ImportAsync)
		guarded.GET("/import/jobs", c.ImportHandler.ListJobs)
		guarded.GET("/import/jobs/:id", c.ImportHandler.GetJob)

		guarded.GET("/export", c.ExportHandler.Export)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = err.Error()
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "ok"
		if c.Cache == nil {
			cacheStatus = "disabled"
		} else if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":      statusWord(status),
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"database":    dbStatus,
			"cache":       cacheStatus,
			"timestamp":   time.Now().UTC(),
		})
	}
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "unhealthy"
}
