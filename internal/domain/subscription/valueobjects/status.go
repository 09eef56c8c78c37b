package valueobjects

import (
	"fmt"
	"strings"
)

// SubscriptionStatus is the local lifecycle state of a subscription row.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusPastDue:   true,
	StatusCancelled: true,
}

// ParseStatus parses a string to SubscriptionStatus (case-insensitive)
func ParseStatus(value string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(strings.ToLower(strings.TrimSpace(value)))
	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid subscription status: %s", value)
	}
	return status, nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanUseService reports whether this status grants premium access
// (subject to the billing period check on the aggregate).
func (s SubscriptionStatus) CanUseService() bool {
	return s == StatusActive
}

func (s SubscriptionStatus) IsCancelled() bool {
	return s == StatusCancelled
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusActive:    {StatusPastDue, StatusCancelled},
		StatusPastDue:   {StatusActive, StatusCancelled},
		StatusCancelled: {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
