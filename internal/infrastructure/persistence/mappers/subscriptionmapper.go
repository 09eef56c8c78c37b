package mappers

import (
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/mapper"
)

// SubscriptionMapper handles the conversion between domain entities and persistence models
type SubscriptionMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

// SubscriptionMapperImpl is the concrete implementation of SubscriptionMapper
type SubscriptionMapperImpl struct{}

// NewSubscriptionMapper creates a new subscription mapper
func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := vo.ParsePlan(model.Plan)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subscription plan: %w", err)
	}

	status, err := vo.ParseStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subscription status: %w", err)
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		plan,
		status,
		model.StripeCustomerID,
		model.StripeSessionID,
		model.StripeSubscriptionID,
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.CancelAtPeriodEnd,
		model.CancelledAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:                   entity.ID(),
		SID:                  entity.SID(),
		UserID:               entity.UserID(),
		Plan:                 entity.Plan().String(),
		Status:               entity.Status().String(),
		StripeCustomerID:     entity.StripeCustomerID(),
		StripeSessionID:      entity.StripeSessionID(),
		StripeSubscriptionID: entity.StripeSubscriptionID(),
		CurrentPeriodStart:   entity.CurrentPeriodStart(),
		CurrentPeriodEnd:     entity.CurrentPeriodEnd(),
		CancelAtPeriodEnd:    entity.CancelAtPeriodEnd(),
		CancelledAt:          entity.CancelledAt(),
		Version:              entity.Version(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *SubscriptionMapperImpl) ToEntities(modelList []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.SubscriptionModel) uint { return model.ID })
}
