package valueobjects

import (
	"fmt"
	"strings"
	"unicode"
)

// Name represents a person's display name value object.
// OAuth providers supply names in many scripts, so validation stays loose:
// only length and empty checks are applied.
type Name struct {
	value string
}

// NewName creates a new Name value object with validation
func NewName(value string) (*Name, error) {
	normalized := strings.Join(strings.Fields(value), " ")

	if normalized == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	if len(normalized) > 100 {
		return nil, fmt.Errorf("name cannot exceed 100 characters")
	}

	return &Name{value: normalized}, nil
}

// String returns the string representation of the name
func (n *Name) String() string {
	return n.value
}

// Equals checks if two name objects are equal
func (n *Name) Equals(other *Name) bool {
	if n == nil || other == nil {
		return n == other
	}
	return strings.EqualFold(n.value, other.value)
}

// FirstName returns the first name part
func (n *Name) FirstName() string {
	parts := strings.Fields(n.value)
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// Initials returns the initials of the name
func (n *Name) Initials() string {
	var initials []rune
	for _, part := range strings.Fields(n.value) {
		for _, r := range part {
			initials = append(initials, unicode.ToUpper(r))
			break
		}
	}
	return string(initials)
}

// MarshalJSON implements json.Marshaler interface
func (n Name) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.value + `"`), nil
}
