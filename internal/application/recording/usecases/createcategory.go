package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type CreateCategoryCommand struct {
	UserSID string
	Name    string
}

type CreateCategoryUseCase struct {
	userRepo user.Repository
	catRepo  recording.CategoryRepository
	logger   logger.Interface
}

func NewCreateCategoryUseCase(
	userRepo user.Repository,
	catRepo recording.CategoryRepository,
	logger logger.Interface,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		userRepo: userRepo,
		catRepo:  catRepo,
		logger:   logger,
	}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryResponse, error) {
	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	cat, err := recording.NewCategory(userEntity.ID(), cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError("invalid category", err.Error())
	}

	// Name collision check covers the seeded defaults too: a second
	// "sleep" would only confuse the picker.
	exists, err := uc.catRepo.ExistsByNameForUser(ctx, userEntity.ID(), cat.Name())
	if err != nil {
		uc.logger.Errorw("failed to check category name", "user_id", userEntity.ID(), "error", err)
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("a category with this name already exists")
	}

	if err := uc.catRepo.Create(ctx, cat); err != nil {
		uc.logger.Errorw("failed to create category", "user_id", userEntity.ID(), "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	uc.logger.Infow("category created", "category_sid", cat.SID(), "user_id", userEntity.ID(), "name", cat.Name())

	return dto.CategoryFromEntity(cat), nil
}
