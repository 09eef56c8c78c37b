package dto

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// UserResponse represents the response for a user
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Initials  string    `json:"initials"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromEntity converts a domain user to its API representation
func UserFromEntity(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        id.FormatUserID(u.SID()),
		Email:     u.Email().String(),
		Name:      u.Name().String(),
		Initials:  u.Name().Initials(),
		AvatarURL: u.AvatarURL(),
		Status:    u.Status().String(),
		CreatedAt: u.CreatedAt(),
	}
}

// LoginResponse is returned after a successful OAuth sign-in
type LoginResponse struct {
	User      *UserResponse `json:"user"`
	ExpiresIn int64         `json:"expires_in"`
	IsNewUser bool          `json:"is_new_user"`
}

// RefreshResponse is returned after a successful token refresh
type RefreshResponse struct {
	ExpiresIn int64 `json:"expires_in"`
}

// AuthURLResponse carries the provider consent URL for the frontend
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
