package subscription

import (
	"fmt"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/shared/events"
)

// Event types
const (
	EventTypeSubscriptionActivated              = "subscription.activated"
	EventTypeSubscriptionCancellationScheduled  = "subscription.cancellation_scheduled"
	EventTypeSubscriptionCancelled              = "subscription.cancelled"
	EventTypeSubscriptionPastDue                = "subscription.past_due"
)

// SubscriptionActivatedEvent is emitted when a checkout completes and a
// subscription row is created.
type SubscriptionActivatedEvent struct {
	events.BaseEvent
	SubscriptionSID string `json:"subscription_sid"`
	UserID          uint   `json:"user_id"`
	Plan            string `json:"plan"`
}

func NewSubscriptionActivatedEvent(sid string, userID uint, plan string) SubscriptionActivatedEvent {
	return SubscriptionActivatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("subscription:%s", sid),
			EventType:   EventTypeSubscriptionActivated,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		SubscriptionSID: sid,
		UserID:          userID,
		Plan:            plan,
	}
}

// SubscriptionCancellationScheduledEvent is emitted when a user schedules
// cancellation at period end.
type SubscriptionCancellationScheduledEvent struct {
	events.BaseEvent
	SubscriptionSID string     `json:"subscription_sid"`
	UserID          uint       `json:"user_id"`
	EffectiveAt     *time.Time `json:"effective_at,omitempty"`
}

func NewSubscriptionCancellationScheduledEvent(sid string, userID uint, effectiveAt *time.Time) SubscriptionCancellationScheduledEvent {
	return SubscriptionCancellationScheduledEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("subscription:%s", sid),
			EventType:   EventTypeSubscriptionCancellationScheduled,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		SubscriptionSID: sid,
		UserID:          userID,
		EffectiveAt:     effectiveAt,
	}
}

// SubscriptionCancelledEvent is emitted when a subscription is cancelled
// immediately (provider-reported deletion).
type SubscriptionCancelledEvent struct {
	events.BaseEvent
	SubscriptionSID string `json:"subscription_sid"`
	UserID          uint   `json:"user_id"`
}

func NewSubscriptionCancelledEvent(sid string, userID uint) SubscriptionCancelledEvent {
	return SubscriptionCancelledEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("subscription:%s", sid),
			EventType:   EventTypeSubscriptionCancelled,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		SubscriptionSID: sid,
		UserID:          userID,
	}
}

// SubscriptionPastDueEvent is emitted after a failed payment.
type SubscriptionPastDueEvent struct {
	events.BaseEvent
	SubscriptionSID string `json:"subscription_sid"`
	UserID          uint   `json:"user_id"`
}

func NewSubscriptionPastDueEvent(sid string, userID uint) SubscriptionPastDueEvent {
	return SubscriptionPastDueEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("subscription:%s", sid),
			EventType:   EventTypeSubscriptionPastDue,
			OccurredAt:  time.Now(),
			Version:     1,
		},
		SubscriptionSID: sid,
		UserID:          userID,
	}
}
