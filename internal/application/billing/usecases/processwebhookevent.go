package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/email"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type ProcessWebhookEventCommand struct {
	Event *stripe.Event
}

// ProcessWebhookEventUseCase applies a verified Stripe event to the local
// subscription store. Processing is idempotent at two levels: the event ID
// is recorded in an audit table, and checkout completions are additionally
// guarded by the unique stripe_session_id column. Any mutation failure is
// returned so the HTTP layer answers non-2xx and Stripe redelivers.
type ProcessWebhookEventUseCase struct {
	subRepo     subscription.Repository
	webhookRepo subscription.WebhookEventRepository
	userRepo    user.Repository
	entCache    cache.EntitlementCache
	emailSvc    email.Service
	logger      logger.Interface
}

func NewProcessWebhookEventUseCase(
	subRepo subscription.Repository,
	webhookRepo subscription.WebhookEventRepository,
	userRepo user.Repository,
	entCache cache.EntitlementCache,
	emailSvc email.Service,
	logger logger.Interface,
) *ProcessWebhookEventUseCase {
	return &ProcessWebhookEventUseCase{
		subRepo:     subRepo,
		webhookRepo: webhookRepo,
		userRepo:    userRepo,
		entCache:    entCache,
		emailSvc:    emailSvc,
		logger:      logger,
	}
}

// providerSubscription is the subset of a Stripe subscription payload the
// ingestor reads. Decoding locally keeps both the pre- and post-2025 API
// period layouts working regardless of the account's pinned version.
type providerSubscription struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CanceledAt        int64  `json:"canceled_at"`

	CurrentPeriodStart int64 `json:"current_period_start"`
	CurrentPeriodEnd   int64 `json:"current_period_end"`

	Items struct {
		Data []struct {
			CurrentPeriodStart int64 `json:"current_period_start"`
			CurrentPeriodEnd   int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

func (p *providerSubscription) periodBounds() (start, end int64) {
	start, end = p.CurrentPeriodStart, p.CurrentPeriodEnd
	if start == 0 && len(p.Items.Data) > 0 {
		start, end = p.Items.Data[0].CurrentPeriodStart, p.Items.Data[0].CurrentPeriodEnd
	}
	return start, end
}

// providerInvoice mirrors the same versioning concern for invoices, where
// the subscription reference moved under "parent".
type providerInvoice struct {
	ID           string `json:"id"`
	Subscription string `json:"subscription"`
	Parent       struct {
		SubscriptionDetails struct {
			Subscription string `json:"subscription"`
		} `json:"subscription_details"`
	} `json:"parent"`
}

func (p *providerInvoice) subscriptionID() string {
	if p.Subscription != "" {
		return p.Subscription
	}
	return p.Parent.SubscriptionDetails.Subscription
}

func (uc *ProcessWebhookEventUseCase) Execute(ctx context.Context, cmd ProcessWebhookEventCommand) error {
	event := cmd.Event
	if event == nil {
		return errors.NewValidationError("event is required")
	}

	processed, err := uc.webhookRepo.ExistsByProviderEventID(event.ID)
	if err != nil {
		uc.logger.Errorw("failed to check webhook event", "event_id", event.ID, "error", err)
		return fmt.Errorf("failed to check webhook event: %w", err)
	}
	if processed {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID, "type", event.Type)
		return nil
	}

	switch event.Type {
	case "checkout.session.completed":
		err = uc.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		err = uc.handleSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		err = uc.handleSubscriptionDeleted(ctx, event)
	case "invoice.payment_failed":
		err = uc.handlePaymentFailed(ctx, event)
	default:
		uc.logger.Infow("ignoring webhook event", "event_id", event.ID, "type", event.Type)
	}
	if err != nil {
		return err
	}

	return uc.recordEvent(event)
}

// recordEvent writes the audit row. A conflict means a concurrent delivery
// of the same event won the race, which is success for our purposes.
func (uc *ProcessWebhookEventUseCase) recordEvent(event *stripe.Event) error {
	audit, err := subscription.NewWebhookEvent(event.ID, string(event.Type), string(event.Data.Raw))
	if err != nil {
		return fmt.Errorf("failed to build webhook audit record: %w", err)
	}
	if err := uc.webhookRepo.Create(audit); err != nil {
		if errors.IsConflictError(err) {
			return nil
		}
		uc.logger.Errorw("failed to record webhook event", "event_id", event.ID, "error", err)
		return fmt.Errorf("failed to record webhook event: %w", err)
	}
	return nil
}

func (uc *ProcessWebhookEventUseCase) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to decode checkout session: %w", err)
	}

	userSID := sess.Metadata["user_sid"]
	planValue := sess.Metadata["plan"]
	if userSID == "" || planValue == "" {
		// Session was not created by this backend; without attribution the
		// purchase cannot be honored. Fail so the redelivery shows up in
		// the provider dashboard.
		uc.logger.Errorw("checkout session missing attribution metadata", "session_id", sess.ID, "event_id", event.ID)
		return fmt.Errorf("checkout session %s missing user metadata", sess.ID)
	}

	plan, err := vo.ParsePlan(planValue)
	if err != nil {
		uc.logger.Errorw("checkout session carries unknown plan", "session_id", sess.ID, "plan", planValue)
		return fmt.Errorf("checkout session %s carries unknown plan %q", sess.ID, planValue)
	}

	userEntity, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		return fmt.Errorf("failed to get user for checkout: %w", err)
	}
	if userEntity == nil {
		uc.logger.Errorw("checkout session references unknown user", "session_id", sess.ID, "user_sid", userSID)
		return fmt.Errorf("checkout session %s references unknown user", sess.ID)
	}

	// Fast path for redeliveries that slipped past the event-ID check.
	existing, err := uc.subRepo.GetByStripeSessionID(ctx, sess.ID)
	if err != nil && !errors.IsNotFoundError(err) {
		return fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if existing != nil {
		uc.logger.Infow("checkout session already materialized", "session_id", sess.ID, "subscription_sid", existing.SID())
		return nil
	}

	var customerID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	var stripeSubID *string
	if sess.Subscription != nil && sess.Subscription.ID != "" {
		subID := sess.Subscription.ID
		stripeSubID = &subID
	}

	sub, err := subscription.NewSubscription(userEntity.ID(), plan, customerID, sess.ID, stripeSubID, biztime.NowUTC())
	if err != nil {
		return fmt.Errorf("failed to build subscription: %w", err)
	}

	if err := uc.subRepo.Create(ctx, sub); err != nil {
		if errors.IsConflictError(err) {
			// Concurrent delivery inserted the row first.
			uc.logger.Infow("subscription already created by concurrent delivery", "session_id", sess.ID)
			return nil
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	uc.invalidateEntitlement(ctx, userEntity.ID())

	if sendErr := uc.emailSvc.SendSubscriptionActivatedEmail(userEntity.Email().String(), plan.String()); sendErr != nil {
		uc.logger.Warnw("failed to send activation email", "user_id", userEntity.ID(), "error", sendErr)
	}

	uc.logger.Infow("subscription activated",
		"subscription_sid", sub.SID(),
		"user_id", userEntity.ID(),
		"plan", plan.String(),
		"session_id", sess.ID,
	)
	return nil
}

func (uc *ProcessWebhookEventUseCase) handleSubscriptionUpdated(ctx context.Context, event *stripe.Event) error {
	var payload providerSubscription
	if err := json.Unmarshal(event.Data.Raw, &payload); err != nil {
		return fmt.Errorf("failed to decode subscription payload: %w", err)
	}

	sub, err := uc.subRepo.GetByStripeSubscriptionID(ctx, payload.ID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			// Likely created outside this backend; nothing local to sync.
			uc.logger.Warnw("subscription update for unknown subscription", "stripe_subscription_id", payload.ID)
			return nil
		}
		return fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.ApplyProviderStatus(payload.Status)

	if start, end := payload.periodBounds(); start > 0 {
		var endTime *time.Time
		if end > 0 {
			t := time.Unix(end, 0).UTC()
			endTime = &t
		}
		if err := sub.UpdatePeriod(time.Unix(start, 0).UTC(), endTime); err != nil {
			uc.logger.Warnw("ignoring invalid period from provider", "stripe_subscription_id", payload.ID, "error", err)
		}
	}

	uc.syncCancelFlag(sub, payload.CancelAtPeriodEnd)

	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.invalidateEntitlement(ctx, sub.UserID())

	uc.logger.Infow("subscription synced from provider",
		"subscription_sid", sub.SID(),
		"status", sub.Status().String(),
		"cancel_at_period_end", sub.CancelAtPeriodEnd(),
	)
	return nil
}

func (uc *ProcessWebhookEventUseCase) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	var payload providerSubscription
	if err := json.Unmarshal(event.Data.Raw, &payload); err != nil {
		return fmt.Errorf("failed to decode subscription payload: %w", err)
	}

	sub, err := uc.subRepo.GetByStripeSubscriptionID(ctx, payload.ID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("subscription deletion for unknown subscription", "stripe_subscription_id", payload.ID)
			return nil
		}
		return fmt.Errorf("failed to get subscription: %w", err)
	}

	if err := sub.CancelNow(biztime.NowUTC()); err != nil {
		// Already cancelled; no state to change.
		uc.logger.Infow("subscription already cancelled", "subscription_sid", sub.SID())
		return nil
	}

	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.invalidateEntitlement(ctx, sub.UserID())
	uc.notifySubscriptionEnded(ctx, sub)

	uc.logger.Infow("subscription cancelled by provider", "subscription_sid", sub.SID(), "user_id", sub.UserID())
	return nil
}

func (uc *ProcessWebhookEventUseCase) handlePaymentFailed(ctx context.Context, event *stripe.Event) error {
	var payload providerInvoice
	if err := json.Unmarshal(event.Data.Raw, &payload); err != nil {
		return fmt.Errorf("failed to decode invoice payload: %w", err)
	}

	stripeSubID := payload.subscriptionID()
	if stripeSubID == "" {
		// One-time payment invoice; nothing to downgrade.
		uc.logger.Infow("payment failure without subscription", "invoice_id", payload.ID)
		return nil
	}

	sub, err := uc.subRepo.GetByStripeSubscriptionID(ctx, stripeSubID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("payment failure for unknown subscription", "stripe_subscription_id", stripeSubID)
			return nil
		}
		return fmt.Errorf("failed to get subscription: %w", err)
	}

	if err := sub.MarkPastDue(); err != nil {
		uc.logger.Infow("skipping past-due transition", "subscription_sid", sub.SID(), "reason", err.Error())
		return nil
	}

	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.invalidateEntitlement(ctx, sub.UserID())

	if userEntity, userErr := uc.userRepo.GetByID(ctx, sub.UserID()); userErr == nil && userEntity != nil {
		if sendErr := uc.emailSvc.SendPaymentFailedEmail(userEntity.Email().String(), sub.Plan().String()); sendErr != nil {
			uc.logger.Warnw("failed to send payment failure email", "user_id", sub.UserID(), "error", sendErr)
		}
	}

	uc.logger.Infow("subscription marked past due", "subscription_sid", sub.SID(), "user_id", sub.UserID())
	return nil
}

// syncCancelFlag mirrors the provider's cancel-at-period-end flag without
// tripping the domain guards meant for user-initiated changes.
func (uc *ProcessWebhookEventUseCase) syncCancelFlag(sub *subscription.Subscription, providerFlag bool) {
	if sub.CancelAtPeriodEnd() == providerFlag {
		return
	}
	var err error
	if providerFlag {
		err = sub.ScheduleCancellation()
	} else {
		err = sub.ResumeCancellation()
	}
	if err != nil {
		uc.logger.Warnw("could not mirror provider cancel flag", "subscription_sid", sub.SID(), "error", err)
	}
}

func (uc *ProcessWebhookEventUseCase) invalidateEntitlement(ctx context.Context, userID uint) {
	if err := uc.entCache.Invalidate(ctx, userID); err != nil {
		uc.logger.Warnw("failed to invalidate entitlement cache", "user_id", userID, "error", err)
	}
}

func (uc *ProcessWebhookEventUseCase) notifySubscriptionEnded(ctx context.Context, sub *subscription.Subscription) {
	userEntity, err := uc.userRepo.GetByID(ctx, sub.UserID())
	if err != nil || userEntity == nil {
		return
	}
	if sendErr := uc.emailSvc.SendSubscriptionEndedEmail(userEntity.Email().String(), sub.Plan().String()); sendErr != nil {
		uc.logger.Warnw("failed to send subscription ended email", "user_id", sub.UserID(), "error", sendErr)
	}
}
