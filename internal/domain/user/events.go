package user

import (
	"fmt"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/shared/events"
)

// Event types
const (
	EventTypeUserCreated       = "user.created"
	EventTypeUserDeleted       = "user.deleted"
	EventTypeUserStatusChanged = "user.status.changed"
	EventTypeUserSignedIn      = "user.signed_in"
)

// UserCreatedEvent is emitted when a new user is created on first OAuth sign-in
type UserCreatedEvent struct {
	events.BaseEvent
	UserSID string `json:"user_sid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// NewUserCreatedEvent creates a new user created event
func NewUserCreatedEvent(userSID, email, name string) UserCreatedEvent {
	return UserCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("user:%s", userSID),
			EventType:   EventTypeUserCreated,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		UserSID: userSID,
		Email:   email,
		Name:    name,
	}
}

// UserStatusChangedEvent is emitted when a user's status changes
type UserStatusChangedEvent struct {
	events.BaseEvent
	UserSID   string `json:"user_sid"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Reason    string `json:"reason"`
}

// NewUserStatusChangedEvent creates a new user status changed event
func NewUserStatusChangedEvent(userSID, oldStatus, newStatus, reason string) UserStatusChangedEvent {
	return UserStatusChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("user:%s", userSID),
			EventType:   EventTypeUserStatusChanged,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		UserSID:   userSID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Reason:    reason,
	}
}

// UserDeletedEvent is emitted when a user is soft deleted
type UserDeletedEvent struct {
	events.BaseEvent
	UserSID   string `json:"user_sid"`
	OldStatus string `json:"old_status"`
}

// NewUserDeletedEvent creates a new user deleted event
func NewUserDeletedEvent(userSID, oldStatus string) UserDeletedEvent {
	return UserDeletedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("user:%s", userSID),
			EventType:   EventTypeUserDeleted,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		UserSID:   userSID,
		OldStatus: oldStatus,
	}
}
