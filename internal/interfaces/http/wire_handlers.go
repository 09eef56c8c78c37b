package http

import (
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/handlers"
)

type allHandlers struct {
	auth      *handlers.AuthHandler
	billing   *handlers.BillingHandler
	webhook   *handlers.WebhookHandler
	recording *handlers.RecordingHandler
	category  *handlers.CategoryHandler
	health    *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		auth: handlers.NewAuthHandler(
			c.ucs.initiateOAuth,
			c.ucs.handleOAuth,
			c.ucs.refreshToken,
			c.ucs.logout,
			c.ucs.getCurrentUser,
			c.log,
			c.cfg.Auth.Cookie,
			c.cfg.Auth.JWT,
			c.cfg.Server.FrontendCallbackURL,
		),
		billing: handlers.NewBillingHandler(
			c.ucs.createCheckout,
			c.ucs.getCheckout,
			c.ucs.getEntitlement,
			c.ucs.cancelSub,
			c.ucs.resumeSub,
			c.log,
		),
		webhook: handlers.NewWebhookHandler(c.gateway, c.ucs.processWebhook, c.log),
		recording: handlers.NewRecordingHandler(
			c.ucs.saveRecording,
			c.ucs.listRecordings,
			c.ucs.getRecording,
			c.ucs.deleteRecording,
			c.log,
		),
		category: handlers.NewCategoryHandler(
			c.ucs.listCategories,
			c.ucs.createCategory,
			c.ucs.deleteCategory,
			c.log,
		),
		health: handlers.NewHealthHandler(c.db),
	}
}
