package models

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"gorm.io/gorm"
)

// RecordingModel represents the database persistence model for voice recordings.
type RecordingModel struct {
	ID              uint   `gorm:"primarykey"`
	SID             string `gorm:"uniqueIndex;size:50;not null"`
	UserID          uint   `gorm:"not null;index:idx_recording_user"`
	Title           string `gorm:"size:200;not null"`
	AudioURL        string `gorm:"type:text;not null"`
	MimeType        string `gorm:"size:100"`
	DurationSeconds int    `gorm:"not null;default:0"`
	Transcript      *string `gorm:"type:text"`
	Summary         *string `gorm:"type:text"`
	CategoryID      *uint  `gorm:"index:idx_recording_category"`
	Version         int    `gorm:"default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (RecordingModel) TableName() string {
	return constants.TableRecordings
}

// BeforeCreate GORM hook for setting default values
func (m *RecordingModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
