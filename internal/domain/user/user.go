package user

import (
	"fmt"
	"sync"
	"time"

	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/user/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// User represents the user aggregate root (pure domain model without persistence concerns).
// Users are created on their first OAuth sign-in and are active immediately.
type User struct {
	id        uint
	sid       string
	email     *vo.Email
	name      *vo.Name
	avatarURL string
	status    vo.Status
	createdAt time.Time
	updatedAt time.Time
	version   int
	events    []any
	mu        sync.RWMutex
}

// NewUser creates a new user aggregate with initial values
func NewUser(email *vo.Email, name *vo.Name, avatarURL string) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}

	sid, err := id.NewUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user SID: %w", err)
	}

	now := biztime.NowUTC()
	user := &User{
		sid:       sid,
		email:     email,
		name:      name,
		avatarURL: avatarURL,
		status:    vo.StatusActive,
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []any{},
	}

	user.recordEvent(NewUserCreatedEvent(user.sid, email.String(), name.String()))

	return user, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(userID uint, sid string, email *vo.Email, name *vo.Name, avatarURL string, status vo.Status, createdAt, updatedAt time.Time, version int) (*User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}

	return &User{
		id:        userID,
		sid:       sid,
		email:     email,
		name:      name,
		avatarURL: avatarURL,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
		events:    []any{},
	}, nil
}

// ID returns the internal user ID
func (u *User) ID() uint {
	return u.id
}

// SID returns the external Stripe-style user ID
func (u *User) SID() string {
	return u.sid
}

// Email returns the user's email
func (u *User) Email() *vo.Email {
	return u.email
}

// Name returns the user's name
func (u *User) Name() *vo.Name {
	return u.name
}

// AvatarURL returns the user's avatar URL
func (u *User) AvatarURL() string {
	return u.avatarURL
}

// Status returns the user's status
func (u *User) Status() vo.Status {
	return u.status
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (u *User) Version() int {
	return u.version
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(userID uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = userID
	return nil
}

// UpdateProfile refreshes the user's name and avatar from the OAuth provider.
// No-op when nothing changed.
func (u *User) UpdateProfile(newName *vo.Name, avatarURL string) error {
	if newName == nil {
		return fmt.Errorf("name cannot be nil")
	}

	if u.name.Equals(newName) && u.avatarURL == avatarURL {
		return nil
	}

	u.name = newName
	u.avatarURL = avatarURL
	u.updatedAt = biztime.NowUTC()
	u.version++

	return nil
}

// Suspend suspends a user (typically for policy violations)
func (u *User) Suspend(reason string) error {
	if u.status.IsSuspended() {
		return nil
	}

	if !u.status.CanTransitionTo(vo.StatusSuspended) {
		return fmt.Errorf("cannot suspend user with status %s", u.status.String())
	}

	if reason == "" {
		return fmt.Errorf("suspension reason is required")
	}

	oldStatus := u.status
	u.status = vo.StatusSuspended
	u.updatedAt = biztime.NowUTC()
	u.version++

	u.recordEvent(NewUserStatusChangedEvent(u.sid, oldStatus.String(), u.status.String(), reason))

	return nil
}

// Activate reactivates a suspended or inactive user
func (u *User) Activate() error {
	if u.status.IsActive() {
		return nil
	}

	if !u.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot activate user with status %s", u.status.String())
	}

	oldStatus := u.status
	u.status = vo.StatusActive
	u.updatedAt = biztime.NowUTC()
	u.version++

	u.recordEvent(NewUserStatusChangedEvent(u.sid, oldStatus.String(), u.status.String(), "User activated"))

	return nil
}

// Delete marks the user as deleted (soft delete)
func (u *User) Delete() error {
	if u.status.IsDeleted() {
		return nil
	}

	if !u.status.CanTransitionTo(vo.StatusDeleted) {
		return fmt.Errorf("cannot delete user with status %s", u.status.String())
	}

	oldStatus := u.status
	u.status = vo.StatusDeleted
	u.updatedAt = biztime.NowUTC()
	u.version++

	u.recordEvent(NewUserDeletedEvent(u.sid, oldStatus.String()))

	return nil
}

// CanPerformActions checks if the user can perform actions
func (u *User) CanPerformActions() bool {
	return u.status.CanPerformActions()
}

// recordEvent records a domain event
func (u *User) recordEvent(event any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.events = append(u.events, event)
}

// GetEvents returns and clears recorded domain events
func (u *User) GetEvents() []any {
	u.mu.Lock()
	defer u.mu.Unlock()
	events := u.events
	u.events = []any{}
	return events
}

// Validate performs domain-level validation
func (u *User) Validate() error {
	if u.email == nil {
		return fmt.Errorf("email is required")
	}
	if u.name == nil {
		return fmt.Errorf("name is required")
	}
	if !vo.ValidStatuses[u.status] {
		return fmt.Errorf("invalid status: %s", u.status)
	}
	return nil
}
