package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

func TestListCategories_DefaultsComeFirst(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)
	categories := []*recording.Category{
		newOwnedCategory(t, 10, 42, "work"),
		newDefaultCategory(t, 2, "shower"),
		newOwnedCategory(t, 11, 42, "arguments i won in my head"),
		newDefaultCategory(t, 1, "sleep"),
	}

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("ListForUser", mock.Anything, uint(42)).Return(categories, nil)

	uc := NewListCategoriesUseCase(userRepo, catRepo, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), ListCategoriesCommand{UserSID: owner.SID()})

	require.NoError(t, err)
	require.Len(t, resp, 4)
	assert.Equal(t, "shower", resp[0].Name)
	assert.Equal(t, "sleep", resp[1].Name)
	assert.True(t, resp[0].IsDefault)
	assert.True(t, resp[1].IsDefault)
	assert.Equal(t, "arguments i won in my head", resp[2].Name)
	assert.Equal(t, "work", resp[3].Name)
	assert.False(t, resp[2].IsDefault)
}

func TestCreateCategory_Succeeds(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("ExistsByNameForUser", mock.Anything, uint(42), "night thoughts").Return(false, nil)
	catRepo.On("Create", mock.Anything, mock.MatchedBy(func(cat *recording.Category) bool {
		return cat.Name() == "night thoughts" && cat.IsOwnedBy(42)
	})).Return(nil)

	uc := NewCreateCategoryUseCase(userRepo, catRepo, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), CreateCategoryCommand{
		UserSID: owner.SID(),
		Name:    "  night thoughts  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "night thoughts", resp.Name)
	assert.False(t, resp.IsDefault)
}

func TestCreateCategory_DuplicateNameConflicts(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("ExistsByNameForUser", mock.Anything, uint(42), "sleep").Return(true, nil)

	uc := NewCreateCategoryUseCase(userRepo, catRepo, logger.NewLogger())
	_, err := uc.Execute(context.Background(), CreateCategoryCommand{
		UserSID: owner.SID(),
		Name:    "sleep",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	catRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCategory_RejectsEmptyName(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)
	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)

	uc := NewCreateCategoryUseCase(userRepo, catRepo, logger.NewLogger())
	_, err := uc.Execute(context.Background(), CreateCategoryCommand{
		UserSID: owner.SID(),
		Name:    "   ",
	})

	require.Error(t, err)
	catRepo.AssertNotCalled(t, "ExistsByNameForUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCategory_RemovesOwnCategory(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)
	cat := newOwnedCategory(t, 10, 42, "work")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("GetBySID", mock.Anything, cat.SID()).Return(cat, nil)
	catRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

	uc := NewDeleteCategoryUseCase(userRepo, catRepo, logger.NewLogger())
	err := uc.Execute(context.Background(), DeleteCategoryCommand{
		UserSID:     owner.SID(),
		CategorySID: cat.SID(),
	})

	require.NoError(t, err)
	catRepo.AssertExpectations(t)
}

func TestDeleteCategory_DefaultsAreImmutable(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)
	sleep := newDefaultCategory(t, 1, "sleep")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("GetBySID", mock.Anything, sleep.SID()).Return(sleep, nil)

	uc := NewDeleteCategoryUseCase(userRepo, catRepo, logger.NewLogger())
	err := uc.Execute(context.Background(), DeleteCategoryCommand{
		UserSID:     owner.SID(),
		CategorySID: sleep.SID(),
	})

	require.ErrorIs(t, err, recording.ErrDefaultCategoryImmutable)
	catRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCategory_ForeignCategoryLooksMissing(t *testing.T) {
	userRepo := new(mockUserRepository)
	catRepo := new(mockCategoryRepository)

	owner := newTestUser(t, 42)
	foreign := newOwnedCategory(t, 10, 99, "private")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	catRepo.On("GetBySID", mock.Anything, foreign.SID()).Return(foreign, nil)

	uc := NewDeleteCategoryUseCase(userRepo, catRepo, logger.NewLogger())
	err := uc.Execute(context.Background(), DeleteCategoryCommand{
		UserSID:     owner.SID(),
		CategorySID: foreign.SID(),
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	catRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
