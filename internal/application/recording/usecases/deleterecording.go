package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/storage"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type DeleteRecordingCommand struct {
	UserSID      string
	RecordingSID string
}

// DeleteRecordingUseCase removes a recording row and, best-effort, its
// stored audio object.
type DeleteRecordingUseCase struct {
	userRepo user.Repository
	recRepo  recording.Repository
	objects  storage.ObjectStorage
	logger   logger.Interface
}

func NewDeleteRecordingUseCase(
	userRepo user.Repository,
	recRepo recording.Repository,
	objects storage.ObjectStorage,
	logger logger.Interface,
) *DeleteRecordingUseCase {
	return &DeleteRecordingUseCase{
		userRepo: userRepo,
		recRepo:  recRepo,
		objects:  objects,
		logger:   logger,
	}
}

func (uc *DeleteRecordingUseCase) Execute(ctx context.Context, cmd DeleteRecordingCommand) error {
	userEntity, rec, err := ownedRecording(ctx, uc.userRepo, uc.recRepo, cmd.UserSID, cmd.RecordingSID)
	if err != nil {
		return err
	}

	if err := uc.recRepo.Delete(ctx, rec.ID()); err != nil {
		uc.logger.Errorw("failed to delete recording", "recording_sid", rec.SID(), "error", err)
		return fmt.Errorf("failed to delete recording: %w", err)
	}

	// The row is the source of truth; a leaked object only costs storage.
	if key := uc.objects.KeyFromURL(rec.AudioURL()); key != "" {
		if delErr := uc.objects.Delete(ctx, key); delErr != nil {
			uc.logger.Warnw("failed to delete audio object", "recording_sid", rec.SID(), "key", key, "error", delErr)
		}
	}

	uc.logger.Infow("recording deleted", "recording_sid", rec.SID(), "user_id", userEntity.ID())
	return nil
}
