package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/middleware"
)

// RecordingRouteConfig holds dependencies for recording and category routes.
type RecordingRouteConfig struct {
	RecordingHandler *handlers.RecordingHandler
	CategoryHandler  *handlers.CategoryHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupRecordingRoutes configures recording and category routes. All of them
// operate on the authenticated user's own data.
func SetupRecordingRoutes(engine *gin.Engine, cfg *RecordingRouteConfig) {
	recordings := engine.Group("/recordings")
	recordings.Use(cfg.AuthMiddleware.RequireAuth())
	{
		recordings.POST("", cfg.RecordingHandler.SaveRecording)
		recordings.GET("", cfg.RecordingHandler.ListRecordings)
		recordings.GET("/:id", cfg.RecordingHandler.GetRecording)
		recordings.DELETE("/:id", cfg.RecordingHandler.DeleteRecording)
	}

	categories := engine.Group("/categories")
	categories.Use(cfg.AuthMiddleware.RequireAuth())
	{
		categories.GET("", cfg.CategoryHandler.ListCategories)
		categories.POST("", cfg.CategoryHandler.CreateCategory)
		categories.DELETE("/:id", cfg.CategoryHandler.DeleteCategory)
	}
}
