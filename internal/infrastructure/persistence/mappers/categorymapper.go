package mappers

import (
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/mapper"
)

// CategoryMapper handles the conversion between domain entities and persistence models
type CategoryMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.CategoryModel) (*recording.Category, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *recording.Category) (*models.CategoryModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.CategoryModel) ([]*recording.Category, error)
}

// CategoryMapperImpl is the concrete implementation of CategoryMapper
type CategoryMapperImpl struct{}

// NewCategoryMapper creates a new category mapper
func NewCategoryMapper() CategoryMapper {
	return &CategoryMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *CategoryMapperImpl) ToEntity(model *models.CategoryModel) (*recording.Category, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := recording.ReconstructCategory(
		model.ID,
		model.SID,
		model.UserID,
		model.Name,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct category entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *CategoryMapperImpl) ToModel(entity *recording.Category) (*models.CategoryModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.CategoryModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		UserID:    entity.UserID(),
		Name:      entity.Name(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *CategoryMapperImpl) ToEntities(modelList []*models.CategoryModel) ([]*recording.Category, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CategoryModel) uint { return model.ID })
}
