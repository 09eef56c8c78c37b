package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.OAuthAccountModel{},
		&models.SessionModel{},
		&models.SubscriptionModel{},
		&models.WebhookEventModel{},
		&models.RecordingModel{},
		&models.CategoryModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestLogger() logger.Interface {
	return logger.NewLogger()
}

func timeInFuture(t *testing.T) time.Time {
	t.Helper()
	return time.Now().UTC().Add(24 * time.Hour)
}

func timeInPast(t *testing.T) time.Time {
	t.Helper()
	return time.Now().UTC().Add(-24 * time.Hour)
}
