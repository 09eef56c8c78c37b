package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.GET("/oauth/:provider", cfg.RateLimiter.Limit(), cfg.AuthHandler.InitiateOAuth)
		auth.GET("/oauth/:provider/callback", cfg.AuthHandler.HandleOAuthCallback)

		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
	}
}
