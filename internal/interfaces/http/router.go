package http

import (
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/middleware"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/routes"
)

// setupRouter installs global middleware and registers all route groups.
func (c *Container) setupRouter() {
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	routes.SetupHealthRoutes(c.engine, c.hdlrs.health)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.auth,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupBillingRoutes(c.engine, &routes.BillingRouteConfig{
		BillingHandler: c.hdlrs.billing,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupRecordingRoutes(c.engine, &routes.RecordingRouteConfig{
		RecordingHandler: c.hdlrs.recording,
		CategoryHandler:  c.hdlrs.category,
		AuthMiddleware:   c.authMiddleware,
	})

	routes.SetupWebhookRoutes(c.engine, &routes.WebhookRouteConfig{
		WebhookHandler: c.hdlrs.webhook,
	})
}
