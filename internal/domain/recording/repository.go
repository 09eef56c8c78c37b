package recording

import "context"

// ListFilter represents filtering and pagination options for recording lists
type ListFilter struct {
	Page       int
	PageSize   int
	CategoryID *uint
}

// Repository defines the interface for recording data operations
type Repository interface {
	// Create creates a new recording
	Create(ctx context.Context, rec *Recording) error

	// GetByID retrieves a recording by internal ID
	GetByID(ctx context.Context, recID uint) (*Recording, error)

	// GetBySID retrieves a recording by external SID
	GetBySID(ctx context.Context, sid string) (*Recording, error)

	// ListByUserID retrieves a paginated list of the user's recordings,
	// newest first
	ListByUserID(ctx context.Context, userID uint, filter ListFilter) ([]*Recording, int64, error)

	// Update updates an existing recording
	Update(ctx context.Context, rec *Recording) error

	// Delete removes a recording by internal ID
	Delete(ctx context.Context, recID uint) error

	// CountByUserID returns the number of recordings the user has saved
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, cat *Category) error

	// GetByID retrieves a category by internal ID
	GetByID(ctx context.Context, catID uint) (*Category, error)

	// GetBySID retrieves a category by external SID
	GetBySID(ctx context.Context, sid string) (*Category, error)

	// ListForUser retrieves the seeded defaults plus the user's own
	// categories
	ListForUser(ctx context.Context, userID uint) ([]*Category, error)

	// ExistsByNameForUser checks whether the user already has a category
	// with this name (defaults included)
	ExistsByNameForUser(ctx context.Context, userID uint, name string) (bool, error)

	// Update updates an existing category
	Update(ctx context.Context, cat *Category) error

	// Delete removes a category by internal ID
	Delete(ctx context.Context, catID uint) error
}
