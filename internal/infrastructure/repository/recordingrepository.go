package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/mappers"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// RecordingRepository implements the recording repository interface
type RecordingRepository struct {
	db     *gorm.DB
	mapper mappers.RecordingMapper
	logger logger.Interface
}

// NewRecordingRepository creates a new recording repository
func NewRecordingRepository(db *gorm.DB, logger logger.Interface) recording.Repository {
	return &RecordingRepository{
		db:     db,
		mapper: mappers.NewRecordingMapper(),
		logger: logger,
	}
}

// Create creates a new recording
func (r *RecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	model, err := r.mapper.ToModel(rec)
	if err != nil {
		r.logger.Errorw("failed to map recording entity to model", "error", err)
		return fmt.Errorf("failed to map recording entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create recording in database", "error", err)
		return fmt.Errorf("failed to create recording: %w", err)
	}

	if err := rec.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set recording ID", "error", err)
		return fmt.Errorf("failed to set recording ID: %w", err)
	}

	return nil
}

// GetByID retrieves a recording by internal ID
func (r *RecordingRepository) GetByID(ctx context.Context, recID uint) (*recording.Recording, error) {
	var model models.RecordingModel

	if err := r.db.WithContext(ctx).First(&model, recID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("recording not found")
		}
		r.logger.Errorw("failed to get recording by ID", "id", recID, "error", err)
		return nil, fmt.Errorf("failed to get recording: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a recording by external SID
func (r *RecordingRepository) GetBySID(ctx context.Context, sid string) (*recording.Recording, error) {
	var model models.RecordingModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("recording not found")
		}
		r.logger.Errorw("failed to get recording by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get recording: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByUserID retrieves a paginated list of the user's recordings, newest first
func (r *RecordingRepository) ListByUserID(ctx context.Context, userID uint, filter recording.ListFilter) ([]*recording.Recording, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RecordingModel{}).
		Where("user_id = ?", userID)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count recordings", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to count recordings: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var recModels []*models.RecordingModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recModels).Error
	if err != nil {
		r.logger.Errorw("failed to list recordings", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list recordings: %w", err)
	}

	entities, err := r.mapper.ToEntities(recModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Update updates an existing recording
func (r *RecordingRepository) Update(ctx context.Context, rec *recording.Recording) error {
	model, err := r.mapper.ToModel(rec)
	if err != nil {
		r.logger.Errorw("failed to map recording entity to model", "error", err)
		return fmt.Errorf("failed to map recording entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.RecordingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"transcript":  model.Transcript,
			"summary":     model.Summary,
			"category_id": model.CategoryID,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update recording", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update recording: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("recording not found")
	}

	return nil
}

// Delete removes a recording by internal ID
func (r *RecordingRepository) Delete(ctx context.Context, recID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.RecordingModel{}, recID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete recording", "id", recID, "error", result.Error)
		return fmt.Errorf("failed to delete recording: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("recording not found")
	}

	return nil
}

// CountByUserID returns the number of recordings the user has saved
func (r *RecordingRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RecordingModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count recordings by user ID", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count recordings: %w", err)
	}
	return count, nil
}
