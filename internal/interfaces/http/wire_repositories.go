package http

import (
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/repository"
)

type repositories struct {
	users         user.Repository
	sessions      user.SessionRepository
	oauthAccounts user.OAuthAccountRepository
	subscriptions subscription.Repository
	webhookEvents subscription.WebhookEventRepository
	recordings    recording.Repository
	categories    recording.CategoryRepository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		users:         repository.NewUserRepository(c.db, c.log),
		sessions:      repository.NewSessionRepository(c.db),
		oauthAccounts: repository.NewOAuthAccountRepository(c.db),
		subscriptions: repository.NewSubscriptionRepository(c.db, c.log),
		webhookEvents: repository.NewWebhookEventRepository(c.db),
		recordings:    repository.NewRecordingRepository(c.db, c.log),
		categories:    repository.NewCategoryRepository(c.db, c.log),
	}
}
