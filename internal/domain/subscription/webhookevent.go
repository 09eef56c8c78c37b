package subscription

import (
	"fmt"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
)

// WebhookEvent is an audit record of a processed billing provider event.
// The provider event ID is unique, which makes redeliveries detectable.
type WebhookEvent struct {
	ID              uint
	ProviderEventID string
	EventType       string
	Payload         string
	ProcessedAt     time.Time
	CreatedAt       time.Time
}

func NewWebhookEvent(providerEventID, eventType, payload string) (*WebhookEvent, error) {
	if providerEventID == "" {
		return nil, fmt.Errorf("provider event ID is required")
	}
	if eventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	now := biztime.NowUTC()
	return &WebhookEvent{
		ProviderEventID: providerEventID,
		EventType:       eventType,
		Payload:         payload,
		ProcessedAt:     now,
		CreatedAt:       now,
	}, nil
}

// WebhookEventRepository persists the webhook audit trail.
type WebhookEventRepository interface {
	Create(event *WebhookEvent) error
	ExistsByProviderEventID(providerEventID string) (bool, error)
}
