package recording

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecording(t *testing.T) {
	rec, err := NewRecording(1, "Morning thoughts", "recordings/1/abc.webm", "audio/webm", 42, nil)
	require.NoError(t, err)

	assert.Equal(t, "Morning thoughts", rec.Title())
	assert.Equal(t, 42, rec.DurationSeconds())
	assert.Nil(t, rec.Transcript())
	assert.Nil(t, rec.Summary())
	assert.Nil(t, rec.CategoryID())
	assert.True(t, rec.IsOwnedBy(1))
	assert.False(t, rec.IsOwnedBy(2))
	assert.NotEmpty(t, rec.SID())
}

func TestNewRecording_Defaults(t *testing.T) {
	rec, err := NewRecording(1, "   ", "data:audio/webm;base64,AAAA", "audio/webm", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "Untitled recording", rec.Title())
}

func TestNewRecording_Validation(t *testing.T) {
	_, err := NewRecording(0, "x", "url", "audio/webm", 1, nil)
	assert.Error(t, err)

	_, err = NewRecording(1, "x", "", "audio/webm", 1, nil)
	assert.Error(t, err)

	_, err = NewRecording(1, "x", "url", "audio/webm", -1, nil)
	assert.Error(t, err)

	_, err = NewRecording(1, strings.Repeat("a", 201), "url", "audio/webm", 1, nil)
	assert.Error(t, err)
}

func TestRecording_AttachEnrichment(t *testing.T) {
	rec, err := NewRecording(1, "t", "url", "audio/webm", 10, nil)
	require.NoError(t, err)

	rec.AttachTranscript("I dreamed about the sea.")
	require.NotNil(t, rec.Transcript())
	assert.Equal(t, "I dreamed about the sea.", *rec.Transcript())

	rec.AttachSummary("A dream about the sea.")
	require.NotNil(t, rec.Summary())
	assert.Equal(t, 3, rec.Version())
}

func TestRecording_Rename(t *testing.T) {
	rec, err := NewRecording(1, "old", "url", "audio/webm", 10, nil)
	require.NoError(t, err)

	require.NoError(t, rec.Rename("new title"))
	assert.Equal(t, "new title", rec.Title())

	assert.Error(t, rec.Rename(""))
	assert.Error(t, rec.Rename(strings.Repeat("a", 201)))

	// same title is a no-op
	version := rec.Version()
	require.NoError(t, rec.Rename("new title"))
	assert.Equal(t, version, rec.Version())
}

func TestRecording_SetCategory(t *testing.T) {
	rec, err := NewRecording(1, "t", "url", "audio/webm", 10, nil)
	require.NoError(t, err)

	catID := uint(3)
	rec.SetCategory(&catID)
	require.NotNil(t, rec.CategoryID())
	assert.Equal(t, uint(3), *rec.CategoryID())

	rec.SetCategory(nil)
	assert.Nil(t, rec.CategoryID())
}

func TestReconstructRecording(t *testing.T) {
	now := time.Now().UTC()
	transcript := "text"

	rec, err := ReconstructRecording(5, "rec_abc", 1, "t", "url", "audio/webm", 10, &transcript, nil, nil, 2, now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(5), rec.ID())
	assert.Equal(t, "text", *rec.Transcript())

	_, err = ReconstructRecording(0, "rec_abc", 1, "t", "url", "audio/webm", 10, nil, nil, nil, 1, now, now)
	assert.Error(t, err)

	_, err = ReconstructRecording(5, "", 1, "t", "url", "audio/webm", 10, nil, nil, nil, 1, now, now)
	assert.Error(t, err)
}

func TestNewCategory(t *testing.T) {
	cat, err := NewCategory(1, "ideas")
	require.NoError(t, err)
	assert.Equal(t, "ideas", cat.Name())
	assert.False(t, cat.IsDefault())
	assert.True(t, cat.IsOwnedBy(1))
	assert.True(t, cat.IsAccessibleBy(1))
	assert.False(t, cat.IsAccessibleBy(2))

	_, err = NewCategory(0, "ideas")
	assert.Error(t, err)

	_, err = NewCategory(1, "  ")
	assert.Error(t, err)

	_, err = NewCategory(1, strings.Repeat("a", 51))
	assert.Error(t, err)
}

func TestCategory_Defaults(t *testing.T) {
	now := time.Now().UTC()
	cat, err := ReconstructCategory(1, "cat_default", nil, "sleep", now, now)
	require.NoError(t, err)

	assert.True(t, cat.IsDefault())
	assert.True(t, cat.IsAccessibleBy(99))
	assert.False(t, cat.IsOwnedBy(99))
	assert.Error(t, cat.Rename("naps"))
}

func TestCategory_Rename(t *testing.T) {
	cat, err := NewCategory(1, "ideas")
	require.NoError(t, err)

	require.NoError(t, cat.Rename("journal"))
	assert.Equal(t, "journal", cat.Name())

	assert.Error(t, cat.Rename(""))
}
