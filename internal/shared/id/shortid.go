package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixUser         = "usr"
	PrefixSubscription = "sub"
	PrefixRecording    = "rec"
	PrefixCategory     = "cat"
	PrefixWebhookEvent = "evt"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
// This follows the Stripe-style ID pattern for human-readable identifiers.
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// FormatWithPrefix adds a prefix to an existing short ID.
// Example: FormatWithPrefix("rec", "xK9mP2vL3nQ") returns "rec_xK9mP2vL3nQ"
func FormatWithPrefix(prefix, shortID string) string {
	if shortID == "" {
		return ""
	}
	return fmt.Sprintf("%s_%s", prefix, shortID)
}

// ParsePrefixedID extracts the prefix and short ID from a prefixed ID string.
// Example: ParsePrefixedID("rec_xK9mP2vL3nQ") returns ("rec", "xK9mP2vL3nQ", nil)
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// ExtractShortID extracts the short ID from a prefixed ID, validating the prefix.
// Example: ExtractShortID("rec_xK9mP2vL3nQ", "rec") returns "xK9mP2vL3nQ"
func ExtractShortID(prefixedID, expectedPrefix string) (string, error) {
	if err := ValidatePrefix(prefixedID, expectedPrefix); err != nil {
		return "", err
	}
	_, shortID, _ := ParsePrefixedID(prefixedID)
	return shortID, nil
}

// NewUserID generates a new user short ID.
func NewUserID() (string, error) {
	return Generate(DefaultLength)
}

// NewSubscriptionID generates a new subscription short ID.
func NewSubscriptionID() (string, error) {
	return Generate(DefaultLength)
}

// NewRecordingID generates a new recording short ID.
func NewRecordingID() (string, error) {
	return Generate(DefaultLength)
}

// NewCategoryID generates a new category short ID.
func NewCategoryID() (string, error) {
	return Generate(DefaultLength)
}

// FormatUserID formats a short ID as a user prefixed ID.
func FormatUserID(shortID string) string {
	return FormatWithPrefix(PrefixUser, shortID)
}

// FormatSubscriptionID formats a short ID as a subscription prefixed ID.
func FormatSubscriptionID(shortID string) string {
	return FormatWithPrefix(PrefixSubscription, shortID)
}

// FormatRecordingID formats a short ID as a recording prefixed ID.
func FormatRecordingID(shortID string) string {
	return FormatWithPrefix(PrefixRecording, shortID)
}

// FormatCategoryID formats a short ID as a category prefixed ID.
func FormatCategoryID(shortID string) string {
	return FormatWithPrefix(PrefixCategory, shortID)
}

// ParseUserID extracts the short ID from a user prefixed ID.
func ParseUserID(prefixedID string) (string, error) {
	return ExtractShortID(prefixedID, PrefixUser)
}

// ParseSubscriptionID extracts the short ID from a subscription prefixed ID.
func ParseSubscriptionID(prefixedID string) (string, error) {
	return ExtractShortID(prefixedID, PrefixSubscription)
}

// ParseRecordingID extracts the short ID from a recording prefixed ID.
func ParseRecordingID(prefixedID string) (string, error) {
	return ExtractShortID(prefixedID, PrefixRecording)
}

// ParseCategoryID extracts the short ID from a category prefixed ID.
func ParseCategoryID(prefixedID string) (string, error) {
	return ExtractShortID(prefixedID, PrefixCategory)
}
