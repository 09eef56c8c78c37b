package models

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"gorm.io/gorm"
)

// SubscriptionModel represents the database persistence model for subscriptions.
// StripeSessionID carries a unique index so that replayed checkout completions
// surface as duplicate-key conflicts instead of double-activating.
type SubscriptionModel struct {
	ID                   uint   `gorm:"primarykey"`
	SID                  string `gorm:"uniqueIndex;size:50;not null"`
	UserID               uint   `gorm:"not null;index:idx_subscription_user"`
	Plan                 string `gorm:"size:20;not null"`
	Status               string `gorm:"size:20;not null;index:idx_subscription_status"`
	StripeCustomerID     string `gorm:"size:255"`
	StripeSessionID      string `gorm:"uniqueIndex;size:255;not null"`
	StripeSubscriptionID *string `gorm:"size:255;index:idx_stripe_subscription"`
	CurrentPeriodStart   time.Time `gorm:"not null"`
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool `gorm:"default:false"`
	CancelledAt          *time.Time
	Version              int `gorm:"default:1"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate GORM hook for setting default values
func (m *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
