package user

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
)

// Session tracks an authenticated device. The refresh token hash stored
// here is rotated on every refresh.
type Session struct {
	ID               string
	UserID           uint
	DeviceName       string
	IPAddress        string
	UserAgent        string
	RefreshTokenHash string
	ExpiresAt        time.Time
	LastActivityAt   time.Time
	CreatedAt        time.Time
}

func NewSession(userID uint, deviceName, ipAddress, userAgent string, expiresAt time.Time) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Session{
		ID:             sessionID,
		UserID:         userID,
		DeviceName:     deviceName,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
	}, nil
}

func (s *Session) IsExpired() bool {
	return biztime.NowUTC().After(s.ExpiresAt)
}

func (s *Session) UpdateActivity() {
	s.LastActivityAt = biztime.NowUTC()
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type SessionRepository interface {
	Create(session *Session) error
	GetByID(sessionID string) (*Session, error)
	GetByUserID(userID uint) ([]*Session, error)
	GetByRefreshTokenHash(refreshTokenHash string) (*Session, error)
	Update(session *Session) error
	Delete(sessionID string) error
	DeleteByUserID(userID uint) error
	DeleteExpired() error
}
