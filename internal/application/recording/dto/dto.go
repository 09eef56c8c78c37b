package dto

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// RecordingResponse represents a saved recording
type RecordingResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	AudioURL        string    `json:"audio_url"`
	MimeType        string    `json:"mime_type"`
	DurationSeconds int       `json:"duration_seconds"`
	Transcript      string    `json:"transcript,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	CategoryID      string    `json:"category_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListRecordingsResponse is a paginated recording list
type ListRecordingsResponse struct {
	Recordings []*RecordingResponse `json:"recordings"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
}

// CategoryResponse represents a category visible to the user
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest names a new user-owned category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// RecordingFromEntity converts a domain recording to its API shape. The
// category SID has to be resolved by the caller since recordings store only
// the internal category ID.
func RecordingFromEntity(rec *recording.Recording, categorySID string) *RecordingResponse {
	if rec == nil {
		return nil
	}
	resp := &RecordingResponse{
		ID:              id.FormatRecordingID(rec.SID()),
		Title:           rec.Title(),
		AudioURL:        rec.AudioURL(),
		MimeType:        rec.MimeType(),
		DurationSeconds: rec.DurationSeconds(),
		CreatedAt:       rec.CreatedAt(),
	}
	if t := rec.Transcript(); t != nil {
		resp.Transcript = *t
	}
	if s := rec.Summary(); s != nil {
		resp.Summary = *s
	}
	if categorySID != "" {
		resp.CategoryID = id.FormatCategoryID(categorySID)
	}
	return resp
}

// CategoryFromEntity converts a domain category to its API shape
func CategoryFromEntity(cat *recording.Category) *CategoryResponse {
	if cat == nil {
		return nil
	}
	return &CategoryResponse{
		ID:        id.FormatCategoryID(cat.SID()),
		Name:      cat.Name(),
		IsDefault: cat.IsDefault(),
		CreatedAt: cat.CreatedAt(),
	}
}
