package migration

import (
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.OAuthAccountModel{},
		&models.SessionModel{},
		&models.SubscriptionModel{},
		&models.WebhookEventModel{},
		&models.CategoryModel{},
		&models.RecordingModel{},
	}
}
