package dto

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// CheckoutRequest starts a hosted checkout for the given plan
type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required,oneof=monthly lifetime"`
}

// CheckoutResponse carries the hosted checkout redirect URL
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CheckoutSessionStatusResponse is the one-shot poll result for the
// post-checkout success page. It is display-only; entitlement always comes
// from the entitlement endpoint.
type CheckoutSessionStatusResponse struct {
	SessionID     string `json:"session_id"`
	PaymentStatus string `json:"payment_status"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Plan          string `json:"plan,omitempty"`
}

// EntitlementResponse reports the caller's current access level
type EntitlementResponse struct {
	HasSubscription     bool       `json:"has_subscription"`
	Plan                string     `json:"plan,omitempty"`
	CurrentPeriodEnd    *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd   bool       `json:"cancel_at_period_end"`
	MaxRecordingSeconds int        `json:"max_recording_seconds"`
}

// SubscriptionResponse represents one subscription lifecycle row
type SubscriptionResponse struct {
	ID                string     `json:"id"`
	Plan              string     `json:"plan"`
	Status            string     `json:"status"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// SubscriptionFromEntity converts a domain subscription to its API shape
func SubscriptionFromEntity(sub *subscription.Subscription) *SubscriptionResponse {
	if sub == nil {
		return nil
	}
	return &SubscriptionResponse{
		ID:                id.FormatSubscriptionID(sub.SID()),
		Plan:              sub.Plan().String(),
		Status:            sub.Status().String(),
		CurrentPeriodEnd:  sub.CurrentPeriodEnd(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd(),
		CancelledAt:       sub.CancelledAt(),
		CreatedAt:         sub.CreatedAt(),
	}
}
