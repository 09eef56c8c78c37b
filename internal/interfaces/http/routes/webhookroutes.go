package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers"
)

// WebhookRouteConfig holds dependencies for provider webhook routes.
type WebhookRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
}

// SetupWebhookRoutes configures provider-facing webhook routes. These are
// authenticated by signature verification, not by session cookies.
func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/stripe", cfg.WebhookHandler.HandleStripeWebhook)
	}
}
