package recording

import (
	"fmt"
	"strings"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// Recording represents a saved voice memo. Transcript and summary are
// filled in best-effort after the audio is stored; a recording without
// either is still valid.
type Recording struct {
	recID           uint
	sid             string
	userID          uint
	title           string
	audioURL        string
	mimeType        string
	durationSeconds int
	transcript      *string
	summary         *string
	categoryID      *uint
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewRecording creates a recording for a stored audio object.
func NewRecording(userID uint, title, audioURL, mimeType string, durationSeconds int, categoryID *uint) (*Recording, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if audioURL == "" {
		return nil, fmt.Errorf("audio URL is required")
	}
	if durationSeconds < 0 {
		return nil, fmt.Errorf("duration cannot be negative")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled recording"
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title cannot exceed 200 characters")
	}

	sid, err := id.NewRecordingID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recording SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Recording{
		sid:             sid,
		userID:          userID,
		title:           title,
		audioURL:        audioURL,
		mimeType:        mimeType,
		durationSeconds: durationSeconds,
		categoryID:      categoryID,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructRecording reconstructs a recording from persistence
func ReconstructRecording(
	recID uint,
	sid string,
	userID uint,
	title, audioURL, mimeType string,
	durationSeconds int,
	transcript, summary *string,
	categoryID *uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Recording, error) {
	if recID == 0 {
		return nil, fmt.Errorf("recording ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("recording SID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Recording{
		recID:           recID,
		sid:             sid,
		userID:          userID,
		title:           title,
		audioURL:        audioURL,
		mimeType:        mimeType,
		durationSeconds: durationSeconds,
		transcript:      transcript,
		summary:         summary,
		categoryID:      categoryID,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// ID returns the internal recording ID
func (r *Recording) ID() uint {
	return r.recID
}

// SID returns the external Stripe-style recording ID
func (r *Recording) SID() string {
	return r.sid
}

// UserID returns the owning user's internal ID
func (r *Recording) UserID() uint {
	return r.userID
}

// Title returns the recording title
func (r *Recording) Title() string {
	return r.title
}

// AudioURL returns the stored audio location (object key or data URI)
func (r *Recording) AudioURL() string {
	return r.audioURL
}

// MimeType returns the audio MIME type
func (r *Recording) MimeType() string {
	return r.mimeType
}

// DurationSeconds returns the audio duration in seconds
func (r *Recording) DurationSeconds() int {
	return r.durationSeconds
}

// Transcript returns the transcript text, nil when transcription has not
// succeeded
func (r *Recording) Transcript() *string {
	return r.transcript
}

// Summary returns the summary text, nil when summarization has not
// succeeded
func (r *Recording) Summary() *string {
	return r.summary
}

// CategoryID returns the internal category ID, nil when uncategorized
func (r *Recording) CategoryID() *uint {
	return r.categoryID
}

// Version returns the aggregate version for optimistic locking
func (r *Recording) Version() int {
	return r.version
}

// CreatedAt returns when the recording was created
func (r *Recording) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recording was last updated
func (r *Recording) UpdatedAt() time.Time {
	return r.updatedAt
}

// SetID sets the recording ID (only for persistence layer use)
func (r *Recording) SetID(recID uint) error {
	if r.recID != 0 {
		return fmt.Errorf("recording ID is already set")
	}
	if recID == 0 {
		return fmt.Errorf("recording ID cannot be zero")
	}
	r.recID = recID
	return nil
}

// IsOwnedBy reports whether the recording belongs to the given user
func (r *Recording) IsOwnedBy(userID uint) bool {
	return r.userID == userID
}

// AttachTranscript stores the transcription result
func (r *Recording) AttachTranscript(text string) {
	r.transcript = &text
	r.updatedAt = biztime.NowUTC()
	r.version++
}

// AttachSummary stores the summarization result
func (r *Recording) AttachSummary(text string) {
	r.summary = &text
	r.updatedAt = biztime.NowUTC()
	r.version++
}

// Rename updates the recording title
func (r *Recording) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if len(title) > 200 {
		return fmt.Errorf("title cannot exceed 200 characters")
	}

	if r.title == title {
		return nil
	}

	r.title = title
	r.updatedAt = biztime.NowUTC()
	r.version++
	return nil
}

// SetCategory moves the recording to a category; nil clears it
func (r *Recording) SetCategory(categoryID *uint) {
	r.categoryID = categoryID
	r.updatedAt = biztime.NowUTC()
	r.version++
}
