package valueobjects

import (
	"fmt"
	"strings"
)

// Status represents the user status value object
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// ValidStatuses contains all valid status values
var ValidStatuses = map[Status]bool{
	StatusActive:    true,
	StatusInactive:  true,
	StatusSuspended: true,
	StatusDeleted:   true,
}

// StatusTransitions defines allowed status transitions
var StatusTransitions = map[Status][]Status{
	StatusActive: {
		StatusInactive,
		StatusSuspended,
		StatusDeleted,
	},
	StatusInactive: {
		StatusActive,
		StatusDeleted,
	},
	StatusSuspended: {
		StatusActive,
		StatusInactive,
		StatusDeleted,
	},
	StatusDeleted: {},
}

// ParseStatus parses a string to Status (case-insensitive)
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	status := Status(normalized)

	if normalized == "" {
		return "", fmt.Errorf("status cannot be empty")
	}

	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid status: %s", value)
	}

	return status, nil
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsActive checks if the status is active
func (s Status) IsActive() bool {
	return s == StatusActive
}

// IsSuspended checks if the status is suspended
func (s Status) IsSuspended() bool {
	return s == StatusSuspended
}

// IsDeleted checks if the status is deleted
func (s Status) IsDeleted() bool {
	return s == StatusDeleted
}

// CanPerformActions reports whether a user in this status may use the API
func (s Status) CanPerformActions() bool {
	return s == StatusActive
}

// CanTransitionTo checks if the current status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range StatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
