package subscription

import (
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
)

// ErrLifetimeNotCancellable is returned when cancellation is requested for
// a lifetime purchase.
var ErrLifetimeNotCancellable = errors.NewValidationError("lifetime purchases cannot be cancelled")

// ErrNoActiveSubscription is returned when an operation requires an active
// subscription and the user has none.
var ErrNoActiveSubscription = errors.NewNotFoundError("no active subscription found")
