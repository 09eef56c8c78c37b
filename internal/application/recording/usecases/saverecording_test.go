package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/user/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

func newTestUser(t *testing.T, userID uint) *user.User {
	t.Helper()

	email, err := vo.NewEmail(fmt.Sprintf("user%d@example.com", userID))
	require.NoError(t, err)
	name, err := vo.NewName("Dana Sleeper")
	require.NoError(t, err)

	now := biztime.NowUTC()
	u, err := user.ReconstructUser(userID, fmt.Sprintf("usrtest%06d", userID), email, name, "", vo.StatusActive, now, now, 1)
	require.NoError(t, err)
	return u
}

func newOwnedCategory(t *testing.T, catID, userID uint, name string) *recording.Category {
	t.Helper()

	cat, err := recording.NewCategory(userID, name)
	require.NoError(t, err)
	require.NoError(t, cat.SetID(catID))
	return cat
}

func newDefaultCategory(t *testing.T, catID uint, name string) *recording.Category {
	t.Helper()

	now := biztime.NowUTC()
	cat, err := recording.ReconstructCategory(catID, fmt.Sprintf("cattest%06d", catID), nil, name, now, now)
	require.NoError(t, err)
	return cat
}

func newSaveUseCase(
	userRepo *mockUserRepository,
	recRepo *mockRecordingRepository,
	catRepo *mockCategoryRepository,
	objects *mockObjectStorage,
	transcriber *mockTranscriber,
	summarizer *mockSummarizer,
	entitlement *mockEntitlementChecker,
) *SaveRecordingUseCase {
	return NewSaveRecordingUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement, logger.NewLogger())
}

func TestSaveRecording_StoresAudioAndEnrichesText(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)
	audio := []byte("fake-audio-bytes")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	objects.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, owner.SID()+"/") && strings.HasSuffix(key, "-shower_idea.m4a")
	}), "audio/mp4", audio).Return("https://cdn.example.com/audio/abc", nil)
	recRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *recording.Recording) bool {
		return r.UserID() == 42 && r.Title() == "shower_idea" && r.DurationSeconds() == 30
	})).Return(nil)
	transcriber.On("Transcribe", mock.Anything, audio, "audio/mp4").
		Return("I should tile the bathroom in blue", nil)
	summarizer.On("Summarize", mock.Anything, "I should tile the bathroom in blue").
		Return("- Blue bathroom tiles", nil)
	recRepo.On("Update", mock.Anything, mock.AnythingOfType("*recording.Recording")).Return(nil)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	resp, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "shower_idea.m4a",
		MimeType:        "audio/mp4",
		Audio:           audio,
		DurationSeconds: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "shower_idea", resp.Title)
	assert.Equal(t, "https://cdn.example.com/audio/abc", resp.AudioURL)
	assert.Equal(t, "I should tile the bathroom in blue", resp.Transcript)
	assert.Equal(t, "- Blue bathroom tiles", resp.Summary)
	entitlement.AssertNotCalled(t, "HasAccess", mock.Anything, mock.Anything)
}

func TestSaveRecording_FreeUserCappedAtLimit(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	entitlement.On("HasAccess", mock.Anything, uint(42)).Return(false, nil)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	_, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "long_ramble.m4a",
		MimeType:        "audio/mp4",
		Audio:           []byte("audio"),
		DurationSeconds: 121,
	})

	require.ErrorIs(t, err, recording.ErrFreeRecordingTooLong)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	recRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaveRecording_EntitledUserIsUncapped(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)
	audio := []byte("audio")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	entitlement.On("HasAccess", mock.Anything, uint(42)).Return(true, nil)
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "audio/mp4", audio).
		Return("https://cdn.example.com/audio/long", nil)
	recRepo.On("Create", mock.Anything, mock.AnythingOfType("*recording.Recording")).Return(nil)
	transcriber.On("Transcribe", mock.Anything, audio, "audio/mp4").Return("", nil)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	resp, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "long_dream.m4a",
		MimeType:        "audio/mp4",
		Audio:           audio,
		DurationSeconds: 900,
	})

	require.NoError(t, err)
	assert.Equal(t, 900, resp.DurationSeconds)
}

func TestSaveRecording_TranscriptionFailureDoesNotAbortSave(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)
	audio := []byte("audio")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "audio/webm", audio).
		Return("https://cdn.example.com/audio/x", nil)
	recRepo.On("Create", mock.Anything, mock.AnythingOfType("*recording.Recording")).Return(nil)
	transcriber.On("Transcribe", mock.Anything, audio, "audio/webm").Return("", assert.AnError)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	resp, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "dream.webm",
		MimeType:        "audio/webm",
		Audio:           audio,
		DurationSeconds: 45,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Transcript)
	assert.Empty(t, resp.Summary)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	recRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSaveRecording_DatabaseFailureRollsBackUpload(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)
	audio := []byte("audio")

	var uploadedKey string
	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "audio/mp4", audio).
		Run(func(args mock.Arguments) { uploadedKey = args.String(1) }).
		Return("https://cdn.example.com/audio/y", nil)
	recRepo.On("Create", mock.Anything, mock.AnythingOfType("*recording.Recording")).Return(assert.AnError)
	objects.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	_, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "dream.m4a",
		MimeType:        "audio/mp4",
		Audio:           audio,
		DurationSeconds: 45,
	})

	require.Error(t, err)
	objects.AssertCalled(t, "Delete", mock.Anything, uploadedKey)
	transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveRecording_RejectsForeignCategory(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)
	foreign := newOwnedCategory(t, 5, 99, "work")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("GetBySID", mock.Anything, foreign.SID()).Return(foreign, nil)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	_, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "dream.m4a",
		MimeType:        "audio/mp4",
		Audio:           []byte("audio"),
		DurationSeconds: 30,
		CategorySID:     foreign.SID(),
	})

	require.Error(t, err)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveRecording_DefaultCategoryIsUsable(t *testing.T) {
	userRepo := new(mockUserRepository)
	recRepo := new(mockRecordingRepository)
	catRepo := new(mockCategoryRepository)
	objects := new(mockObjectStorage)
	transcriber := new(mockTranscriber)
	summarizer := new(mockSummarizer)
	entitlement := new(mockEntitlementChecker)

	owner := newTestUser(t, 42)
	sleep := newDefaultCategory(t, 1, "sleep")
	audio := []byte("audio")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("GetBySID", mock.Anything, sleep.SID()).Return(sleep, nil)
	objects.On("Upload", mock.Anything, mock.AnythingOfType("string"), "audio/mp4", audio).
		Return("https://cdn.example.com/audio/z", nil)
	recRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *recording.Recording) bool {
		return r.CategoryID() != nil && *r.CategoryID() == 1
	})).Return(nil)
	transcriber.On("Transcribe", mock.Anything, audio, "audio/mp4").Return("", nil)

	uc := newSaveUseCase(userRepo, recRepo, catRepo, objects, transcriber, summarizer, entitlement)
	resp, err := uc.Execute(context.Background(), SaveRecordingCommand{
		UserSID:         owner.SID(),
		FileName:        "3am_thought.m4a",
		MimeType:        "audio/mp4",
		Audio:           audio,
		DurationSeconds: 20,
		CategorySID:     sleep.SID(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.CategoryID)
	recRepo.AssertExpectations(t)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "dream.m4a", sanitizeFileName("dream.m4a"))
	assert.Equal(t, "my_dream_1.m4a", sanitizeFileName("my dream 1.m4a"))
	assert.Equal(t, "secret.m4a", sanitizeFileName("../../etc/secret.m4a"))
	assert.Equal(t, "audio", sanitizeFileName(""))
}
