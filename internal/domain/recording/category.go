package recording

import (
	"fmt"
	"strings"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// Category groups recordings. Rows with a nil user ID are the seeded
// defaults visible to everyone; user-created categories are private.
type Category struct {
	catID     uint
	sid       string
	userID    *uint
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewCategory creates a user-owned category.
func NewCategory(userID uint, name string) (*Category, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("category name cannot exceed 50 characters")
	}

	sid, err := id.NewCategoryID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Category{
		sid:       sid,
		userID:    &userID,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCategory reconstructs a category from persistence
func ReconstructCategory(catID uint, sid string, userID *uint, name string, createdAt, updatedAt time.Time) (*Category, error) {
	if catID == 0 {
		return nil, fmt.Errorf("category ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("category SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	return &Category{
		catID:     catID,
		sid:       sid,
		userID:    userID,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the internal category ID
func (c *Category) ID() uint {
	return c.catID
}

// SID returns the external Stripe-style category ID
func (c *Category) SID() string {
	return c.sid
}

// UserID returns the owning user's internal ID; nil for seeded defaults
func (c *Category) UserID() *uint {
	return c.userID
}

// Name returns the category name
func (c *Category) Name() string {
	return c.name
}

// CreatedAt returns when the category was created
func (c *Category) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the category was last updated
func (c *Category) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID sets the category ID (only for persistence layer use)
func (c *Category) SetID(catID uint) error {
	if c.catID != 0 {
		return fmt.Errorf("category ID is already set")
	}
	if catID == 0 {
		return fmt.Errorf("category ID cannot be zero")
	}
	c.catID = catID
	return nil
}

// IsDefault reports whether this is a seeded default category
func (c *Category) IsDefault() bool {
	return c.userID == nil
}

// IsAccessibleBy reports whether the user may attach recordings to this
// category
func (c *Category) IsAccessibleBy(userID uint) bool {
	return c.IsDefault() || (c.userID != nil && *c.userID == userID)
}

// IsOwnedBy reports whether the user owns this category. Defaults are
// owned by nobody and cannot be modified or deleted.
func (c *Category) IsOwnedBy(userID uint) bool {
	return c.userID != nil && *c.userID == userID
}

// Rename updates the category name; seeded defaults are immutable
func (c *Category) Rename(name string) error {
	if c.IsDefault() {
		return fmt.Errorf("default categories cannot be renamed")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	if len(name) > 50 {
		return fmt.Errorf("category name cannot exceed 50 characters")
	}

	c.name = name
	c.updatedAt = biztime.NowUTC()
	return nil
}
