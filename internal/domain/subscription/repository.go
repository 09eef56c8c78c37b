package subscription

import "context"

// Repository defines the interface for subscription data operations
type Repository interface {
	// Create creates a new subscription row. Implementations must surface
	// duplicate stripe_session_id inserts as a conflict error so webhook
	// redeliveries stay idempotent.
	Create(ctx context.Context, sub *Subscription) error

	// GetByID retrieves a subscription by internal ID
	GetByID(ctx context.Context, subID uint) (*Subscription, error)

	// GetBySID retrieves a subscription by external SID
	GetBySID(ctx context.Context, sid string) (*Subscription, error)

	// GetByStripeSessionID retrieves a subscription by the checkout session
	// that created it
	GetByStripeSessionID(ctx context.Context, sessionID string) (*Subscription, error)

	// GetByStripeSubscriptionID retrieves a subscription by the provider
	// subscription ID
	GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*Subscription, error)

	// GetNewestActiveByUserID retrieves the most recently created row with
	// status active for the user, or a not-found error
	GetNewestActiveByUserID(ctx context.Context, userID uint) (*Subscription, error)

	// ListByUserID retrieves all subscription rows for a user, newest first
	ListByUserID(ctx context.Context, userID uint) ([]*Subscription, error)

	// Update updates an existing subscription
	Update(ctx context.Context, sub *Subscription) error
}
