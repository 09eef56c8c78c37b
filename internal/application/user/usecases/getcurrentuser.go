package usecases

import (
	"context"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/user/dto"
	domainUser "github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// GetCurrentUserUseCase returns the profile of the authenticated user.
type GetCurrentUserUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewGetCurrentUserUseCase(userRepo domainUser.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userSID string) (*dto.UserResponse, error) {
	if userSID == "" {
		return nil, errors.NewValidationError("user ID cannot be empty")
	}

	userEntity, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "sid", userSID, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	return dto.UserFromEntity(userEntity), nil
}
