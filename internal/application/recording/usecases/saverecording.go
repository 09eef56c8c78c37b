package usecases

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/storage"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/summarization"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/transcription"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/utils/logutil"
)

type SaveRecordingCommand struct {
	UserSID         string
	FileName        string
	MimeType        string
	Audio           []byte
	DurationSeconds int
	CategorySID     string
}

// SaveRecordingUseCase stores a voice memo. The audio is the durable
// artifact: once it is uploaded and the row is written, transcription and
// summarization failures only leave the text fields empty. A failed row
// write rolls the uploaded object back.
type SaveRecordingUseCase struct {
	userRepo    user.Repository
	recRepo     recording.Repository
	catRepo     recording.CategoryRepository
	objects     storage.ObjectStorage
	transcriber transcription.Transcriber
	summarizer  summarization.Summarizer
	entitlement EntitlementChecker
	logger      logger.Interface
}

func NewSaveRecordingUseCase(
	userRepo user.Repository,
	recRepo recording.Repository,
	catRepo recording.CategoryRepository,
	objects storage.ObjectStorage,
	transcriber transcription.Transcriber,
	summarizer summarization.Summarizer,
	entitlement EntitlementChecker,
	logger logger.Interface,
) *SaveRecordingUseCase {
	return &SaveRecordingUseCase{
		userRepo:    userRepo,
		recRepo:     recRepo,
		catRepo:     catRepo,
		objects:     objects,
		transcriber: transcriber,
		summarizer:  summarizer,
		entitlement: entitlement,
		logger:      logger,
	}
}

func (uc *SaveRecordingUseCase) Execute(ctx context.Context, cmd SaveRecordingCommand) (*dto.RecordingResponse, error) {
	if len(cmd.Audio) == 0 {
		return nil, errors.NewValidationError("audio file is required")
	}
	if cmd.FileName == "" {
		return nil, errors.NewValidationError("file name is required")
	}

	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if cmd.DurationSeconds > constants.FreeRecordingLimitSeconds {
		entitled, err := uc.entitlement.HasAccess(ctx, userEntity.ID())
		if err != nil {
			uc.logger.Errorw("failed to check entitlement", "user_id", userEntity.ID(), "error", err)
			return nil, fmt.Errorf("failed to check entitlement: %w", err)
		}
		if !entitled {
			return nil, recording.ErrFreeRecordingTooLong
		}
	}

	var categoryID *uint
	var categorySID string
	if cmd.CategorySID != "" {
		cat, err := uc.catRepo.GetBySID(ctx, cmd.CategorySID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewNotFoundError("category not found")
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		if !cat.IsAccessibleBy(userEntity.ID()) {
			return nil, errors.NewNotFoundError("category not found")
		}
		cid := cat.ID()
		categoryID = &cid
		categorySID = cat.SID()
	}

	key := objectKey(userEntity.SID(), cmd.FileName)
	audioURL, err := uc.objects.Upload(ctx, key, cmd.MimeType, cmd.Audio)
	if err != nil {
		uc.logger.Errorw("failed to store audio", "user_id", userEntity.ID(), "key", key, "error", err)
		return nil, fmt.Errorf("failed to store audio: %w", err)
	}

	title := titleFromFileName(cmd.FileName)
	rec, err := recording.NewRecording(userEntity.ID(), title, audioURL, cmd.MimeType, cmd.DurationSeconds, categoryID)
	if err != nil {
		return nil, errors.NewValidationError("invalid recording", err.Error())
	}

	if err := uc.recRepo.Create(ctx, rec); err != nil {
		uc.logger.Errorw("failed to save recording, rolling back upload", "user_id", userEntity.ID(), "key", key, "error", err)
		if delErr := uc.objects.Delete(ctx, key); delErr != nil {
			uc.logger.Warnw("failed to roll back uploaded audio", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save recording: %w", err)
	}

	uc.enrichText(ctx, rec, cmd.Audio, cmd.MimeType)

	uc.logger.Infow("recording saved",
		"recording_sid", rec.SID(),
		"user_id", userEntity.ID(),
		"duration_seconds", cmd.DurationSeconds,
		"size", len(cmd.Audio),
	)

	return dto.RecordingFromEntity(rec, categorySID), nil
}

// enrichText runs transcription and summarization. Both are best-effort:
// the recording is already durable and a provider outage must not surface
// to the client.
func (uc *SaveRecordingUseCase) enrichText(ctx context.Context, rec *recording.Recording, audio []byte, mimeType string) {
	transcript, err := uc.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		uc.logger.Warnw("transcription failed", "recording_sid", rec.SID(), "error", err)
		return
	}
	if strings.TrimSpace(transcript) == "" {
		return
	}
	rec.AttachTranscript(transcript)
	uc.logger.Debugw("transcript attached",
		"recording_sid", rec.SID(),
		"transcript", logutil.TruncateForLog(transcript, 80),
	)

	summary, err := uc.summarizer.Summarize(ctx, transcript)
	if err != nil {
		uc.logger.Warnw("summarization failed", "recording_sid", rec.SID(), "error", err)
	} else if strings.TrimSpace(summary) != "" {
		rec.AttachSummary(summary)
	}

	if err := uc.recRepo.Update(ctx, rec); err != nil {
		uc.logger.Warnw("failed to persist transcript", "recording_sid", rec.SID(), "error", err)
	}
}

// objectKey builds the storage key: userSID/timestamp-sanitizedname.ext
func objectKey(userSID, fileName string) string {
	return fmt.Sprintf("%s/%d-%s", userSID, biztime.NowUTC().UnixNano()/int64(time.Millisecond), sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	if name == "" {
		return "audio"
	}
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "audio"
	}
	return b.String()
}

func titleFromFileName(fileName string) string {
	base := path.Base(fileName)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.TrimSpace(base)
	if base == "" {
		base = "Untitled recording"
	}
	if len(base) > 200 {
		base = base[:200]
	}
	return base
}
