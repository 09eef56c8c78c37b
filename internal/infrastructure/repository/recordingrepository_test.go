package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

func createTestRecording(t *testing.T, userID uint, title string, categoryID *uint) *recording.Recording {
	t.Helper()

	rec, err := recording.NewRecording(userID, title, "https://cdn.example.com/audio.m4a", "audio/mp4", 42, categoryID)
	require.NoError(t, err)
	return rec
}

func TestRecordingRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordingRepository(db, newTestLogger())
	ctx := context.Background()

	rec := createTestRecording(t, 1, "Morning dream", nil)
	require.NoError(t, repo.Create(ctx, rec))
	assert.NotZero(t, rec.ID())

	found, err := repo.GetBySID(ctx, rec.SID())
	require.NoError(t, err)
	assert.Equal(t, "Morning dream", found.Title())
	assert.Equal(t, 42, found.DurationSeconds())
	assert.Nil(t, found.Transcript())

	_, err = repo.GetBySID(ctx, "rec_missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRecordingRepository_ListByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordingRepository(db, newTestLogger())
	ctx := context.Background()

	catID := uint(10)
	for i := 0; i < 5; i++ {
		var cat *uint
		if i%2 == 0 {
			cat = &catID
		}
		rec := createTestRecording(t, 1, fmt.Sprintf("Recording %d", i), cat)
		require.NoError(t, repo.Create(ctx, rec))
		// stagger creation times so ordering is deterministic
		require.NoError(t, db.Exec(
			"UPDATE recordings SET created_at = ? WHERE id = ?",
			time.Now().UTC().Add(time.Duration(i)*time.Minute), rec.ID(),
		).Error)
	}
	other := createTestRecording(t, 2, "Someone else's recording", nil)
	require.NoError(t, repo.Create(ctx, other))

	t.Run("newest first with pagination", func(t *testing.T) {
		recs, total, err := repo.ListByUserID(ctx, 1, recording.ListFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, recs, 2)
		assert.Equal(t, "Recording 4", recs[0].Title())
		assert.Equal(t, "Recording 3", recs[1].Title())
	})

	t.Run("second page continues the ordering", func(t *testing.T) {
		recs, total, err := repo.ListByUserID(ctx, 1, recording.ListFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, recs, 2)
		assert.Equal(t, "Recording 2", recs[0].Title())
	})

	t.Run("category filter", func(t *testing.T) {
		recs, total, err := repo.ListByUserID(ctx, 1, recording.ListFilter{Page: 1, PageSize: 10, CategoryID: &catID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, recs, 3)
	})

	t.Run("other users are excluded", func(t *testing.T) {
		recs, total, err := repo.ListByUserID(ctx, 2, recording.ListFilter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, recs, 1)
		assert.Equal(t, "Someone else's recording", recs[0].Title())
	})
}

func TestRecordingRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordingRepository(db, newTestLogger())
	ctx := context.Background()

	rec := createTestRecording(t, 1, "Untitled", nil)
	require.NoError(t, repo.Create(ctx, rec))

	rec.AttachTranscript("I was flying over the ocean")
	rec.AttachSummary("A flying dream")
	require.NoError(t, repo.Update(ctx, rec))

	found, err := repo.GetByID(ctx, rec.ID())
	require.NoError(t, err)
	require.NotNil(t, found.Transcript())
	assert.Equal(t, "I was flying over the ocean", *found.Transcript())
	require.NotNil(t, found.Summary())
	assert.Equal(t, "A flying dream", *found.Summary())
}

func TestRecordingRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordingRepository(db, newTestLogger())
	ctx := context.Background()

	rec := createTestRecording(t, 1, "To delete", nil)
	require.NoError(t, repo.Create(ctx, rec))

	require.NoError(t, repo.Delete(ctx, rec.ID()))

	_, err := repo.GetByID(ctx, rec.ID())
	assert.True(t, errors.IsNotFoundError(err))

	err = repo.Delete(ctx, rec.ID())
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRecordingRepository_CountByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordingRepository(db, newTestLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := createTestRecording(t, 1, fmt.Sprintf("Count %d", i), nil)
		require.NoError(t, repo.Create(ctx, rec))
	}

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db, newTestLogger())
	ctx := context.Background()

	// seed the global defaults the way the migration seeder does
	for _, name := range []string{"sleep", "shower"} {
		sid := id.MustGenerate(id.DefaultLength)
		require.NoError(t, db.Create(&models.CategoryModel{
			SID:       sid,
			UserID:    nil,
			Name:      name,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}).Error)
	}

	t.Run("defaults are visible to every user", func(t *testing.T) {
		cats, err := repo.ListForUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.True(t, cats[0].IsDefault())
		assert.True(t, cats[1].IsDefault())
	})

	t.Run("own categories appear after defaults, other users' do not", func(t *testing.T) {
		mine, err := recording.NewCategory(1, "nightmares")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, mine))

		theirs, err := recording.NewCategory(2, "lucid")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, theirs))

		cats, err := repo.ListForUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, cats, 3)
		assert.Equal(t, "nightmares", cats[2].Name())
		assert.False(t, cats[2].IsDefault())
	})

	t.Run("exists by name includes defaults", func(t *testing.T) {
		exists, err := repo.ExistsByNameForUser(ctx, 1, "sleep")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNameForUser(ctx, 1, "lucid")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rename and delete own category", func(t *testing.T) {
		cat, err := recording.NewCategory(3, "work")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, cat))

		require.NoError(t, cat.Rename("workouts"))
		require.NoError(t, repo.Update(ctx, cat))

		found, err := repo.GetBySID(ctx, cat.SID())
		require.NoError(t, err)
		assert.Equal(t, "workouts", found.Name())

		require.NoError(t, repo.Delete(ctx, cat.ID()))
		_, err = repo.GetByID(ctx, cat.ID())
		assert.True(t, errors.IsNotFoundError(err))
	})
}
