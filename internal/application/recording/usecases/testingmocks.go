package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockRecordingRepository struct {
	mock.Mock
}

func (m *mockRecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRecordingRepository) GetByID(ctx context.Context, recID uint) (*recording.Recording, error) {
	args := m.Called(ctx, recID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recording.Recording), args.Error(1)
}

func (m *mockRecordingRepository) GetBySID(ctx context.Context, sid string) (*recording.Recording, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recording.Recording), args.Error(1)
}

func (m *mockRecordingRepository) ListByUserID(ctx context.Context, userID uint, filter recording.ListFilter) ([]*recording.Recording, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*recording.Recording), args.Get(1).(int64), args.Error(2)
}

func (m *mockRecordingRepository) Update(ctx context.Context, rec *recording.Recording) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRecordingRepository) Delete(ctx context.Context, recID uint) error {
	args := m.Called(ctx, recID)
	return args.Error(0)
}

func (m *mockRecordingRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, cat *recording.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, catID uint) (*recording.Category, error) {
	args := m.Called(ctx, catID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recording.Category), args.Error(1)
}

func (m *mockCategoryRepository) GetBySID(ctx context.Context, sid string) (*recording.Category, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recording.Category), args.Error(1)
}

func (m *mockCategoryRepository) ListForUser(ctx context.Context, userID uint) ([]*recording.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recording.Category), args.Error(1)
}

func (m *mockCategoryRepository) ExistsByNameForUser(ctx context.Context, userID uint, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepository) Update(ctx context.Context, cat *recording.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, catID uint) error {
	args := m.Called(ctx, catID)
	return args.Error(0)
}

type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockObjectStorage) KeyFromURL(rawURL string) string {
	args := m.Called(rawURL)
	return args.String(0)
}

type mockTranscriber struct {
	mock.Mock
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	args := m.Called(ctx, audio, mimeType)
	return args.String(0), args.Error(1)
}

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

type mockEntitlementChecker struct {
	mock.Mock
}

func (m *mockEntitlementChecker) HasAccess(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
