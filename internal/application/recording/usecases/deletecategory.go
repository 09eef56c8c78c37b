package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type DeleteCategoryCommand struct {
	UserSID     string
	CategorySID string
}

// DeleteCategoryUseCase removes a user-owned category. The seeded defaults
// are immutable, and recordings filed under a deleted category simply lose
// the reference.
type DeleteCategoryUseCase struct {
	userRepo user.Repository
	catRepo  recording.CategoryRepository
	logger   logger.Interface
}

func NewDeleteCategoryUseCase(
	userRepo user.Repository,
	catRepo recording.CategoryRepository,
	logger logger.Interface,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		userRepo: userRepo,
		catRepo:  catRepo,
		logger:   logger,
	}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, cmd DeleteCategoryCommand) error {
	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return errors.NewNotFoundError("user not found")
	}

	cat, err := uc.catRepo.GetBySID(ctx, cmd.CategorySID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError("category not found")
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if cat.IsDefault() {
		return recording.ErrDefaultCategoryImmutable
	}
	if !cat.IsOwnedBy(userEntity.ID()) {
		return errors.NewNotFoundError("category not found")
	}

	if err := uc.catRepo.Delete(ctx, cat.ID()); err != nil {
		uc.logger.Errorw("failed to delete category", "category_sid", cat.SID(), "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	uc.logger.Infow("category deleted", "category_sid", cat.SID(), "user_id", userEntity.ID())
	return nil
}
