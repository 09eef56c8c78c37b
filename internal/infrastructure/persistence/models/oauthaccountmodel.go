package models

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
)

// OAuthAccountModel represents the database persistence model for OAuth
// provider links.
type OAuthAccountModel struct {
	ID                uint   `gorm:"primarykey"`
	UserID            uint   `gorm:"not null;index:idx_oauth_user"`
	Provider          string `gorm:"not null;size:20;uniqueIndex:idx_provider_user,priority:1"`
	ProviderUserID    string `gorm:"not null;size:255;uniqueIndex:idx_provider_user,priority:2"`
	ProviderEmail     string `gorm:"size:255"`
	ProviderAvatarURL string `gorm:"size:500"`
	RawUserInfo       *string
	LastLoginAt       *time.Time
	LoginCount        uint `gorm:"default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (OAuthAccountModel) TableName() string {
	return constants.TableOAuthAccounts
}
