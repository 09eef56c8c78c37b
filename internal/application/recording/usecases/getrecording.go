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

type GetRecordingCommand struct {
	UserSID      string
	RecordingSID string
}

type GetRecordingUseCase struct {
	userRepo user.Repository
	recRepo  recording.Repository
	catRepo  recording.CategoryRepository
	logger   logger.Interface
}

func NewGetRecordingUseCase(
	userRepo user.Repository,
	recRepo recording.Repository,
	catRepo recording.CategoryRepository,
	logger logger.Interface,
) *GetRecordingUseCase {
	return &GetRecordingUseCase{
		userRepo: userRepo,
		recRepo:  recRepo,
		catRepo:  catRepo,
		logger:   logger,
	}
}

func (uc *GetRecordingUseCase) Execute(ctx context.Context, cmd GetRecordingCommand) (*dto.RecordingResponse, error) {
	_, rec, err := ownedRecording(ctx, uc.userRepo, uc.recRepo, cmd.UserSID, cmd.RecordingSID)
	if err != nil {
		return nil, err
	}

	categorySID := ""
	if cid := rec.CategoryID(); cid != nil {
		if cat, catErr := uc.catRepo.GetByID(ctx, *cid); catErr == nil {
			categorySID = cat.SID()
		}
	}

	return dto.RecordingFromEntity(rec, categorySID), nil
}

// ownedRecording loads a recording and enforces ownership. A recording
// belonging to someone else is indistinguishable from a missing one.
func ownedRecording(
	ctx context.Context,
	userRepo user.Repository,
	recRepo recording.Repository,
	userSID, recordingSID string,
) (*user.User, *recording.Recording, error) {
	userEntity, err := userRepo.GetBySID(ctx, userSID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, nil, errors.NewNotFoundError("user not found")
	}

	rec, err := recRepo.GetBySID(ctx, recordingSID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil, errors.NewNotFoundError("recording not found")
		}
		return nil, nil, fmt.Errorf("failed to get recording: %w", err)
	}
	if !rec.IsOwnedBy(userEntity.ID()) {
		return nil, nil, errors.NewNotFoundError("recording not found")
	}

	return userEntity, rec, nil
}
