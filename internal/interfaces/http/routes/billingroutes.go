package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for billing routes.
type BillingRouteConfig struct {
	BillingHandler *handlers.BillingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupBillingRoutes configures checkout, entitlement and subscription
// management routes. All of them require an authenticated session.
func SetupBillingRoutes(engine *gin.Engine, cfg *BillingRouteConfig) {
	billing := engine.Group("/billing")
	billing.Use(cfg.AuthMiddleware.RequireAuth())
	{
		billing.POST("/checkout", cfg.BillingHandler.CreateCheckoutSession)
		billing.GET("/checkout/:session_id", cfg.BillingHandler.GetCheckoutSession)
		billing.GET("/entitlement", cfg.BillingHandler.GetEntitlement)
		billing.POST("/subscription/cancel", cfg.BillingHandler.CancelSubscription)
		billing.POST("/subscription/resume", cfg.BillingHandler.ResumeSubscription)
	}
}
