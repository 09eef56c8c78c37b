package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers"
)

// SetupHealthRoutes configures liveness and readiness probes.
func SetupHealthRoutes(engine *gin.Engine, healthHandler *handlers.HealthHandler) {
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
}
