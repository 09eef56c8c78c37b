package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/billing"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/email"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/storage"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/summarization"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/transcription"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/http/middleware"
)

const (
	oauthStatePrefix = "oauth:state:"
	oauthStateTTL    = 10 * time.Minute

	// Per-IP budget for OAuth initiation. Generous enough for retries,
	// tight enough to make state-store flooding expensive.
	oauthRateLimit  = 20
	oauthRateWindow = time.Minute
)

// initInfrastructure sets up Redis, external service clients and the
// middlewares that depend on them.
func (c *Container) initInfrastructure(ctx context.Context) error {
	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	c.jwtSvc = auth.NewJWTService(
		c.cfg.Auth.JWT.Secret,
		c.cfg.Auth.JWT.AccessExpMinutes,
		c.cfg.Auth.JWT.RefreshExpDays,
	)
	c.oauthClient = auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
		ClientID:     c.cfg.OAuth.Google.ClientID,
		ClientSecret: c.cfg.OAuth.Google.ClientSecret,
		RedirectURL:  c.cfg.OAuth.Google.RedirectURL,
	})
	c.stateStore = cache.NewRedisStateStore(c.redis, oauthStatePrefix, oauthStateTTL)
	c.entCache = cache.NewRedisEntitlementCache(c.redis, c.log)

	c.gateway = billing.NewStripeGateway(
		c.cfg.Billing.StripeSecretKey,
		c.cfg.Billing.StripeWebhookSecret,
		c.log,
	)

	objects, err := storage.New(ctx, c.cfg.Storage, c.log)
	if err != nil {
		return fmt.Errorf("object storage: %w", err)
	}
	c.objects = objects

	c.transcriber = transcription.NewElevenLabsClient(c.cfg.Transcription, c.log)
	c.summarizer = summarization.NewOpenAIClient(c.cfg.Summarization, c.log)

	c.emailSvc = email.NewSMTPEmailService(email.SMTPConfig{
		Host:        c.cfg.Email.SMTPHost,
		Port:        c.cfg.Email.SMTPPort,
		Username:    c.cfg.Email.SMTPUser,
		Password:    c.cfg.Email.SMTPPassword,
		FromAddress: c.cfg.Email.FromAddress,
		FromName:    c.cfg.Email.FromName,
		BaseURL:     c.cfg.Server.BaseURL,
	})

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.rateLimiter = middleware.NewRateLimiter(c.redis, oauthRateLimit, oauthRateWindow)

	return nil
}
