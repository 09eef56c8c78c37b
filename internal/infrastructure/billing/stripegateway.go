package billing

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

const (
	// metadataUserSIDKey links Stripe objects back to our user
	metadataUserSIDKey = "user_sid"
	// metadataPlanKey records which plan the checkout was for
	metadataPlanKey = "plan"
)

// CheckoutSession is the subset of a Stripe checkout session the
// application cares about.
type CheckoutSession struct {
	ID                   string
	URL                  string
	PaymentStatus        string
	CustomerID           string
	CustomerEmail        string
	StripeSubscriptionID string
	UserSID              string
	Plan                 string
}

// Gateway abstracts the payment provider so usecases can be tested
// without Stripe.
type Gateway interface {
	// CreateCheckoutSession opens a hosted checkout page for the plan.
	// Monthly plans use subscription mode, lifetime plans a one-time payment.
	CreateCheckoutSession(ctx context.Context, userSID, email, plan, priceID, successURL, cancelURL string) (*CheckoutSession, error)

	// GetCheckoutSession retrieves a checkout session by ID
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ScheduleCancellation flags the provider subscription to cancel at period end
	ScheduleCancellation(ctx context.Context, stripeSubscriptionID string) error

	// ResumeCancellation clears a pending cancel-at-period-end flag
	ResumeCancellation(ctx context.Context, stripeSubscriptionID string) error

	// VerifyWebhook checks the event signature and returns the parsed event
	VerifyWebhook(payload []byte, sigHeader string) (*stripe.Event, error)
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	client        *client.API
	webhookSecret string
	logger        logger.Interface
}

// NewStripeGateway creates a new Stripe gateway
func NewStripeGateway(secretKey, webhookSecret string, logger logger.Interface) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{
		client:        sc,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// CreateCheckoutSession opens a hosted checkout page for the plan.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, userSID, email, plan, priceID, successURL, cancelURL string) (*CheckoutSession, error) {
	mode := stripe.CheckoutSessionModeSubscription
	if plan == "lifetime" {
		mode = stripe.CheckoutSessionModePayment
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(mode)),
		SuccessURL:    stripe.String(successURL),
		CancelURL:     stripe.String(cancelURL),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			metadataUserSIDKey: userSID,
			metadataPlanKey:    plan,
		},
	}
	params.Context = ctx

	if mode == stripe.CheckoutSessionModeSubscription {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				metadataUserSIDKey: userSID,
				metadataPlanKey:    plan,
			},
		}
	}

	sess, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		g.logger.Errorw("failed to create checkout session", "user_sid", userSID, "plan", plan, "error", err)
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	g.logger.Infow("checkout session created", "session_id", sess.ID, "user_sid", userSID, "plan", plan)
	return sessionFromStripe(sess), nil
}

// GetCheckoutSession retrieves a checkout session by ID
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.client.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to get checkout session: %w", err)
	}

	return sessionFromStripe(sess), nil
}

// ScheduleCancellation flags the provider subscription to cancel at period end
func (g *StripeGateway) ScheduleCancellation(ctx context.Context, stripeSubscriptionID string) error {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	params.Context = ctx

	if _, err := g.client.Subscriptions.Update(stripeSubscriptionID, params); err != nil {
		g.logger.Errorw("failed to schedule subscription cancellation", "stripe_subscription_id", stripeSubscriptionID, "error", err)
		return fmt.Errorf("stripe: failed to schedule cancellation: %w", err)
	}

	g.logger.Infow("subscription cancellation scheduled", "stripe_subscription_id", stripeSubscriptionID)
	return nil
}

// ResumeCancellation clears a pending cancel-at-period-end flag
func (g *StripeGateway) ResumeCancellation(ctx context.Context, stripeSubscriptionID string) error {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(false),
	}
	params.Context = ctx

	if _, err := g.client.Subscriptions.Update(stripeSubscriptionID, params); err != nil {
		g.logger.Errorw("failed to resume subscription", "stripe_subscription_id", stripeSubscriptionID, "error", err)
		return fmt.Errorf("stripe: failed to resume subscription: %w", err)
	}

	g.logger.Infow("subscription cancellation resumed", "stripe_subscription_id", stripeSubscriptionID)
	return nil
}

// VerifyWebhook checks the event signature and returns the parsed event.
// API version mismatches are ignored so SDK upgrades don't break replayed
// events.
func (g *StripeGateway) VerifyWebhook(payload []byte, sigHeader string) (*stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("stripe: invalid webhook signature: %w", err)
	}
	return &event, nil
}

func sessionFromStripe(sess *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
	}
	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	if sess.Subscription != nil {
		out.StripeSubscriptionID = sess.Subscription.ID
	}
	if sess.Metadata != nil {
		out.UserSID = sess.Metadata[metadataUserSIDKey]
		out.Plan = sess.Metadata[metadataPlanKey]
	}
	return out
}
