// Package api wires the HTTP surface of the knowledge base: routing,
// middleware, and request handlers.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knowledge-base-api/internal/config"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/knowledge-base-api/internal/service"
	"github.com/knowledge-base-api/internal/validation"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	validator := validation.NewValidator(cfg.Auth.MinPasswordLength)

	// Handlers
	authHandler := NewAuthHandler(services, validator, log)
	sectionHandler := NewSectionHandler(services, validator, log)
	contentHandler := NewContentHandler(services, validator, log)
	containerHandler := NewContainerHandler(services, validator, log)
	userHandler := NewUserHandler(repos.User, validator, log)
	searchHandler := NewSearchHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		// Account endpoints
		auth := api.Group("/auth")
		{
			auth.POST("/register", optionalAuth(services), authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", requireAuth(services), authHandler.Verify)
		}

		// Section browsing is public; management needs editor rights
		sections := api.Group("/sections")
		{
			sections.GET("", sectionHandler.List)
			sections.GET("/:id", sectionHandler.Get)
			sections.GET("/:id/content", optionalAuth(services), sectionHandler.ListContent)

			editing := sections.Group("", requireAuth(services), requireEditor())
			{
				editing.POST("", sectionHandler.Create)
				editing.PUT("/:id", sectionHandler.Update)
				editing.DELETE("/:id", sectionHandler.Delete)
				editing.PUT("/:id/reorder", sectionHandler.Reorder)
			}
		}

		// Content reading is public (published only); writing needs
		// editor rights, container restructuring the author or an admin
		content := api.Group("/content")
		{
			content.GET("", optionalAuth(services), contentHandler.List)
			content.GET("/:id", optionalAuth(services), contentHandler.Get)
			content.GET("/:id/rendered", optionalAuth(services), contentHandler.GetRendered)
			content.GET("/:id/containers", optionalAuth(services), containerHandler.List)

			editing := content.Group("", requireAuth(services), requireEditor())
			{
				editing.POST("", contentHandler.Create)
				editing.PUT("/:id", contentHandler.Update)
				editing.DELETE("/:id", contentHandler.Delete)

				editing.POST("/:id/containers", containerHandler.Create)
				editing.PUT("/:id/containers/:containerId", containerHandler.Update)
				editing.DELETE("/:id/containers/:containerId", containerHandler.Delete)
				editing.POST("/:id/containers/:containerId/move", containerHandler.Move)
			}
		}

		// Search is public; drafts surface only for editors
		api.GET("/search", optionalAuth(services), searchHandler.Search)

		// Admin surface
		admin := api.Group("", requireAuth(services), requireAdmin())
		{
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.UpdateRole)
			admin.DELETE("/users/:id", userHandler.Delete)
			admin.GET("/export", exportHandler.StreamExport)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "knowledge-base-api",
	})
}
