package subscription

import (
	"fmt"
	"time"

	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// Subscription represents the subscription aggregate root. A user may
// accumulate several rows over time (for example a cancelled monthly
// followed by a lifetime purchase); entitlement checks use the newest
// active one.
//
// currentPeriodEnd is nil for lifetime purchases, which never expire.
type Subscription struct {
	subID                uint
	sid                  string
	userID               uint
	plan                 vo.Plan
	status               vo.SubscriptionStatus
	stripeCustomerID     string
	stripeSessionID      string
	stripeSubscriptionID *string
	currentPeriodStart   time.Time
	currentPeriodEnd     *time.Time
	cancelAtPeriodEnd    bool
	cancelledAt          *time.Time
	version              int
	createdAt            time.Time
	updatedAt            time.Time
	events               []any
}

// NewSubscription creates an active subscription from a completed checkout.
// Monthly plans get a billing period starting now; lifetime plans have no
// period end.
func NewSubscription(userID uint, plan vo.Plan, stripeCustomerID, stripeSessionID string, stripeSubscriptionID *string, now time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidPlans[plan] {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if stripeSessionID == "" {
		return nil, fmt.Errorf("stripe session ID is required")
	}

	sid, err := id.NewSubscriptionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription SID: %w", err)
	}

	now = now.UTC()
	s := &Subscription{
		sid:                  sid,
		userID:               userID,
		plan:                 plan,
		status:               vo.StatusActive,
		stripeCustomerID:     stripeCustomerID,
		stripeSessionID:      stripeSessionID,
		stripeSubscriptionID: stripeSubscriptionID,
		currentPeriodStart:   now,
		version:              1,
		createdAt:            now,
		updatedAt:            now,
		events:               []any{},
	}

	if plan.IsRecurring() {
		end := biztime.AddDays(now, constants.MonthlyPeriodDays)
		s.currentPeriodEnd = &end
	}

	s.recordEvent(NewSubscriptionActivatedEvent(s.sid, userID, plan.String()))

	return s, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	subID uint,
	sid string,
	userID uint,
	plan vo.Plan,
	status vo.SubscriptionStatus,
	stripeCustomerID, stripeSessionID string,
	stripeSubscriptionID *string,
	currentPeriodStart time.Time,
	currentPeriodEnd *time.Time,
	cancelAtPeriodEnd bool,
	cancelledAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if subID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidPlans[plan] {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		subID:                subID,
		sid:                  sid,
		userID:               userID,
		plan:                 plan,
		status:               status,
		stripeCustomerID:     stripeCustomerID,
		stripeSessionID:      stripeSessionID,
		stripeSubscriptionID: stripeSubscriptionID,
		currentPeriodStart:   currentPeriodStart,
		currentPeriodEnd:     currentPeriodEnd,
		cancelAtPeriodEnd:    cancelAtPeriodEnd,
		cancelledAt:          cancelledAt,
		version:              version,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		events:               []any{},
	}, nil
}

// ID returns the internal subscription ID
func (s *Subscription) ID() uint {
	return s.subID
}

// SID returns the external Stripe-style subscription ID
func (s *Subscription) SID() string {
	return s.sid
}

// UserID returns the owning user's internal ID
func (s *Subscription) UserID() uint {
	return s.userID
}

// Plan returns the purchased plan
func (s *Subscription) Plan() vo.Plan {
	return s.plan
}

// Status returns the subscription status
func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

// StripeCustomerID returns the Stripe customer ID
func (s *Subscription) StripeCustomerID() string {
	return s.stripeCustomerID
}

// StripeSessionID returns the checkout session that created this row
func (s *Subscription) StripeSessionID() string {
	return s.stripeSessionID
}

// StripeSubscriptionID returns the provider subscription ID; nil for
// one-time lifetime purchases.
func (s *Subscription) StripeSubscriptionID() *string {
	return s.stripeSubscriptionID
}

// CurrentPeriodStart returns the current billing period start
func (s *Subscription) CurrentPeriodStart() time.Time {
	return s.currentPeriodStart
}

// CurrentPeriodEnd returns the current billing period end; nil for lifetime
func (s *Subscription) CurrentPeriodEnd() *time.Time {
	return s.currentPeriodEnd
}

// CancelAtPeriodEnd reports whether cancellation is scheduled
func (s *Subscription) CancelAtPeriodEnd() bool {
	return s.cancelAtPeriodEnd
}

// CancelledAt returns when the subscription was cancelled
func (s *Subscription) CancelledAt() *time.Time {
	return s.cancelledAt
}

// Version returns the aggregate version for optimistic locking
func (s *Subscription) Version() int {
	return s.version
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(subID uint) error {
	if s.subID != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if subID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.subID = subID
	return nil
}

// IsLifetime reports whether this is a lifetime purchase
func (s *Subscription) IsLifetime() bool {
	return s.plan.IsLifetime()
}

// HasAccessAt reports whether this row grants premium access at the given
// moment. Expiry is evaluated lazily against the wall clock; the stored
// status is not changed when a monthly period has lapsed.
func (s *Subscription) HasAccessAt(now time.Time) bool {
	if !s.status.CanUseService() {
		return false
	}
	if s.currentPeriodEnd == nil {
		return true
	}
	return now.Before(*s.currentPeriodEnd)
}

// ScheduleCancellation flags the subscription to lapse at period end.
// Lifetime purchases have nothing to cancel.
func (s *Subscription) ScheduleCancellation() error {
	if s.IsLifetime() {
		return ErrLifetimeNotCancellable
	}
	if s.status.IsCancelled() {
		return fmt.Errorf("subscription is already cancelled")
	}
	if s.cancelAtPeriodEnd {
		return nil
	}

	s.cancelAtPeriodEnd = true
	s.updatedAt = biztime.NowUTC()
	s.version++

	s.recordEvent(NewSubscriptionCancellationScheduledEvent(s.sid, s.userID, s.currentPeriodEnd))

	return nil
}

// ResumeCancellation clears a scheduled cancellation.
func (s *Subscription) ResumeCancellation() error {
	if s.status.IsCancelled() {
		return fmt.Errorf("subscription is already cancelled")
	}
	if !s.cancelAtPeriodEnd {
		return nil
	}

	s.cancelAtPeriodEnd = false
	s.updatedAt = biztime.NowUTC()
	s.version++

	return nil
}

// CancelNow transitions the subscription to cancelled immediately. Used
// when the provider reports the subscription as deleted.
func (s *Subscription) CancelNow(now time.Time) error {
	if s.status.IsCancelled() {
		return nil
	}

	now = now.UTC()
	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.updatedAt = now
	s.version++

	s.recordEvent(NewSubscriptionCancelledEvent(s.sid, s.userID))

	return nil
}

// MarkPastDue flags the subscription after a failed payment.
func (s *Subscription) MarkPastDue() error {
	if s.status == vo.StatusPastDue {
		return nil
	}
	if s.status.IsCancelled() {
		return fmt.Errorf("cannot mark cancelled subscription past due")
	}

	s.status = vo.StatusPastDue
	s.updatedAt = biztime.NowUTC()
	s.version++

	s.recordEvent(NewSubscriptionPastDueEvent(s.sid, s.userID))

	return nil
}

// ApplyProviderStatus maps a provider-reported subscription status onto
// the local lifecycle: "active" stays active, anything else is treated
// as past_due until the provider says otherwise.
func (s *Subscription) ApplyProviderStatus(providerStatus string) {
	var next vo.SubscriptionStatus
	if providerStatus == "active" {
		next = vo.StatusActive
	} else {
		next = vo.StatusPastDue
	}

	if s.status == next {
		return
	}

	s.status = next
	s.updatedAt = biztime.NowUTC()
	s.version++
}

// UpdatePeriod replaces the current billing period boundaries.
func (s *Subscription) UpdatePeriod(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("period end must be after period start")
	}

	s.currentPeriodStart = start.UTC()
	if end != nil {
		utcEnd := end.UTC()
		s.currentPeriodEnd = &utcEnd
	} else {
		s.currentPeriodEnd = end
	}
	s.updatedAt = biztime.NowUTC()
	s.version++

	return nil
}

// recordEvent records a domain event
func (s *Subscription) recordEvent(event any) {
	s.events = append(s.events, event)
}

// GetEvents returns and clears recorded domain events
func (s *Subscription) GetEvents() []any {
	events := s.events
	s.events = []any{}
	return events
}

// Validate performs domain-level validation
func (s *Subscription) Validate() error {
	if s.userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if !vo.ValidPlans[s.plan] {
		return fmt.Errorf("invalid plan: %s", s.plan)
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.plan.IsLifetime() && s.currentPeriodEnd != nil {
		return fmt.Errorf("lifetime subscription cannot have a period end")
	}
	if s.currentPeriodEnd != nil && s.currentPeriodEnd.Before(s.currentPeriodStart) {
		return fmt.Errorf("current period end must be after current period start")
	}
	return nil
}
