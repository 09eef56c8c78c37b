package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/mapper"
)

type ListCategoriesCommand struct {
	UserSID string
}

// ListCategoriesUseCase returns the seeded defaults and the user's own
// categories, defaults first, then name-ordered within each group.
type ListCategoriesUseCase struct {
	userRepo user.Repository
	catRepo  recording.CategoryRepository
	logger   logger.Interface
}

func NewListCategoriesUseCase(
	userRepo user.Repository,
	catRepo recording.CategoryRepository,
	logger logger.Interface,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		userRepo: userRepo,
		catRepo:  catRepo,
		logger:   logger,
	}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context, cmd ListCategoriesCommand) ([]*dto.CategoryResponse, error) {
	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	categories, err := uc.catRepo.ListForUser(ctx, userEntity.ID())
	if err != nil {
		uc.logger.Errorw("failed to list categories", "user_id", userEntity.ID(), "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].IsDefault() != categories[j].IsDefault() {
			return categories[i].IsDefault()
		}
		return categories[i].Name() < categories[j].Name()
	})

	return mapper.MapSlice(categories, dto.CategoryFromEntity), nil
}
