package mappers

import (
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/mapper"
)

// RecordingMapper handles the conversion between domain entities and persistence models
type RecordingMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.RecordingModel) (*recording.Recording, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *recording.Recording) (*models.RecordingModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.RecordingModel) ([]*recording.Recording, error)
}

// RecordingMapperImpl is the concrete implementation of RecordingMapper
type RecordingMapperImpl struct{}

// NewRecordingMapper creates a new recording mapper
func NewRecordingMapper() RecordingMapper {
	return &RecordingMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *RecordingMapperImpl) ToEntity(model *models.RecordingModel) (*recording.Recording, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := recording.ReconstructRecording(
		model.ID,
		model.SID,
		model.UserID,
		model.Title,
		model.AudioURL,
		model.MimeType,
		model.DurationSeconds,
		model.Transcript,
		model.Summary,
		model.CategoryID,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct recording entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *RecordingMapperImpl) ToModel(entity *recording.Recording) (*models.RecordingModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.RecordingModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		UserID:          entity.UserID(),
		Title:           entity.Title(),
		AudioURL:        entity.AudioURL(),
		MimeType:        entity.MimeType(),
		DurationSeconds: entity.DurationSeconds(),
		Transcript:      entity.Transcript(),
		Summary:         entity.Summary(),
		CategoryID:      entity.CategoryID(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *RecordingMapperImpl) ToEntities(modelList []*models.RecordingModel) ([]*recording.Recording, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.RecordingModel) uint { return model.ID })
}
