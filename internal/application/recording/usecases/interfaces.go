package usecases

import "context"

// EntitlementChecker reports whether a user currently holds an active
// subscription. Implemented by the billing entitlement usecase.
type EntitlementChecker interface {
	HasAccess(ctx context.Context, userID uint) (bool, error)
}
