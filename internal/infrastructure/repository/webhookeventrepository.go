package repository

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
)

// WebhookEventRepository records processed billing provider events.
type WebhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) subscription.WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Create records a processed event. A duplicate provider event ID is
// returned as a conflict so redeliveries can be acknowledged without
// reprocessing.
func (r *WebhookEventRepository) Create(event *subscription.WebhookEvent) error {
	model := &models.WebhookEventModel{
		ProviderEventID: event.ProviderEventID,
		EventType:       event.EventType,
		Payload:         datatypes.JSON(event.Payload),
		ProcessedAt:     event.ProcessedAt,
		CreatedAt:       event.CreatedAt,
	}
	if err := r.db.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("webhook event already processed")
		}
		return fmt.Errorf("failed to create webhook event: %w", err)
	}
	event.ID = model.ID
	return nil
}

// ExistsByProviderEventID checks whether the event has already been processed
func (r *WebhookEventRepository) ExistsByProviderEventID(providerEventID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WebhookEventModel{}).
		Where("provider_event_id = ?", providerEventID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check webhook event existence: %w", err)
	}
	return count > 0, nil
}
