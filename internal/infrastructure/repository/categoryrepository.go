package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/mappers"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// CategoryRepository implements the category repository interface
type CategoryRepository struct {
	db     *gorm.DB
	mapper mappers.CategoryMapper
	logger logger.Interface
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB, logger logger.Interface) recording.CategoryRepository {
	return &CategoryRepository{
		db:     db,
		mapper: mappers.NewCategoryMapper(),
		logger: logger,
	}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, cat *recording.Category) error {
	model, err := r.mapper.ToModel(cat)
	if err != nil {
		r.logger.Errorw("failed to map category entity to model", "error", err)
		return fmt.Errorf("failed to map category entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create category in database", "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}

	if err := cat.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set category ID", "error", err)
		return fmt.Errorf("failed to set category ID: %w", err)
	}

	return nil
}

// GetByID retrieves a category by internal ID
func (r *CategoryRepository) GetByID(ctx context.Context, catID uint) (*recording.Category, error) {
	var model models.CategoryModel

	if err := r.db.WithContext(ctx).First(&model, catID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("category not found")
		}
		r.logger.Errorw("failed to get category by ID", "id", catID, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a category by external SID
func (r *CategoryRepository) GetBySID(ctx context.Context, sid string) (*recording.Category, error) {
	var model models.CategoryModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("category not found")
		}
		r.logger.Errorw("failed to get category by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListForUser retrieves the seeded defaults plus the user's own categories.
// Defaults sort first, then the user's own by creation time.
func (r *CategoryRepository) ListForUser(ctx context.Context, userID uint) ([]*recording.Category, error) {
	var catModels []*models.CategoryModel

	err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("user_id IS NOT NULL, created_at ASC").
		Find(&catModels).Error
	if err != nil {
		r.logger.Errorw("failed to list categories for user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return r.mapper.ToEntities(catModels)
}

// ExistsByNameForUser checks whether the user already has a category with
// this name, defaults included
func (r *CategoryRepository) ExistsByNameForUser(ctx context.Context, userID uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("(user_id IS NULL OR user_id = ?) AND name = ?", userID, name).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check category existence", "user_id", userID, "name", name, "error", err)
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return count > 0, nil
}

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, cat *recording.Category) error {
	model, err := r.mapper.ToModel(cat)
	if err != nil {
		r.logger.Errorw("failed to map category entity to model", "error", err)
		return fmt.Errorf("failed to map category entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update category", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}

	return nil
}

// Delete removes a category by internal ID
func (r *CategoryRepository) Delete(ctx context.Context, catID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, catID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete category", "id", catID, "error", result.Error)
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}

	return nil
}
