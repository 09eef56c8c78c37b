package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
)

// WebhookEventModel records every billing provider event we have processed.
// ProviderEventID is unique so redelivered events are detected before any
// state change is applied.
type WebhookEventModel struct {
	ID              uint   `gorm:"primarykey"`
	ProviderEventID string `gorm:"uniqueIndex;size:255;not null"`
	EventType       string `gorm:"size:100;not null;index:idx_webhook_event_type"`
	Payload         datatypes.JSON `gorm:"type:json"`
	ProcessedAt     time.Time      `gorm:"not null"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (WebhookEventModel) TableName() string {
	return constants.TableWebhookEvents
}
