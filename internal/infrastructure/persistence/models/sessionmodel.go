package models

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
)

// SessionModel represents the database persistence model for auth sessions.
type SessionModel struct {
	ID               string `gorm:"primarykey;size:64"`
	UserID           uint   `gorm:"not null;index:idx_session_user"`
	DeviceName       string `gorm:"size:100"`
	IPAddress        string `gorm:"size:45"`
	UserAgent        string `gorm:"size:500"`
	RefreshTokenHash string `gorm:"size:64;index:idx_refresh_token_hash"`
	ExpiresAt        time.Time `gorm:"not null;index:idx_session_expires"`
	LastActivityAt   time.Time
	CreatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return constants.TableSessions
}
