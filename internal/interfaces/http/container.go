package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/billing"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/config"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/email"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/storage"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/summarization"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/transcription"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/middleware"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// Container wires infrastructure, repositories, use cases and handlers
// together, and owns the pieces that need graceful termination.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Infrastructure services
	jwtSvc      *auth.JWTService
	oauthClient *auth.GoogleOAuthClient
	stateStore  *cache.RedisStateStore
	entCache    *cache.RedisEntitlementCache
	gateway     *billing.StripeGateway
	objects     storage.ObjectStorage
	transcriber transcription.Transcriber
	summarizer  summarization.Summarizer
	emailSvc    email.Service
}

// NewContainer builds the full dependency graph. Infrastructure first, then
// repositories, use cases, handlers, and finally the router.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}
	c.initRepositories()
	c.initUseCases()
	c.initHandlers()
	c.setupRouter()

	return c, nil
}

// Engine exposes the configured gin engine for the HTTP server.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases container-owned resources. The database handle is closed
// by the caller that opened it.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	c.log.Info("container shutdown complete")
	return nil
}
