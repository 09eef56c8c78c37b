package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	subvo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	uservo "github.com/dreamtalk-inc/dreamtalk/internal/domain/user/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

func newTestUser(t *testing.T, userID uint) *user.User {
	t.Helper()

	email, err := uservo.NewEmail(fmt.Sprintf("user%d@example.com", userID))
	require.NoError(t, err)
	name, err := uservo.NewName("Dana Sleeper")
	require.NoError(t, err)

	now := biztime.NowUTC()
	u, err := user.ReconstructUser(userID, fmt.Sprintf("usrtest%06d", userID), email, name, "", uservo.StatusActive, now, now, 1)
	require.NoError(t, err)
	return u
}

func newActiveSubscription(t *testing.T, userID uint, plan subvo.Plan, stripeSubID string) *subscription.Subscription {
	t.Helper()

	var subIDPtr *string
	if stripeSubID != "" {
		subIDPtr = &stripeSubID
	}
	sub, err := subscription.NewSubscription(userID, plan, "cus_test", "cs_test_"+stripeSubID, subIDPtr, biztime.NowUTC())
	require.NoError(t, err)
	return sub
}

func stripeEvent(t *testing.T, id, eventType string, payload any) *stripe.Event {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &stripe.Event{
		ID:   id,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func newWebhookUseCase(
	subRepo *mockSubscriptionRepository,
	webhookRepo *mockWebhookEventRepository,
	userRepo *mockUserRepository,
	entCache *mockEntitlementCache,
	emailSvc *mockEmailService,
) *ProcessWebhookEventUseCase {
	return NewProcessWebhookEventUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc, logger.NewLogger())
}

func TestProcessWebhook_CheckoutCompletedCreatesSubscription(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)

	webhookRepo.On("ExistsByProviderEventID", "evt_1").Return(false, nil)
	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetByStripeSessionID", mock.Anything, "cs_1").
		Return(nil, errors.NewNotFoundError("subscription not found"))
	subRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *subscription.Subscription) bool {
		return s.UserID() == 42 &&
			s.Plan() == subvo.PlanMonthly &&
			s.StripeSessionID() == "cs_1" &&
			s.CurrentPeriodEnd() != nil
	})).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	emailSvc.On("SendSubscriptionActivatedEmail", owner.Email().String(), "monthly").Return(nil)
	webhookRepo.On("Create", mock.MatchedBy(func(e *subscription.WebhookEvent) bool {
		return e.ProviderEventID == "evt_1" && e.EventType == "checkout.session.completed"
	})).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_1", "checkout.session.completed", map[string]any{
			"id":           "cs_1",
			"customer":     map[string]any{"id": "cus_1"},
			"subscription": map[string]any{"id": "sub_stripe_1"},
			"metadata":     map[string]string{"user_sid": owner.SID(), "plan": "monthly"},
		}),
	})

	require.NoError(t, err)
	subRepo.AssertExpectations(t)
	webhookRepo.AssertExpectations(t)
	entCache.AssertExpectations(t)
}

func TestProcessWebhook_CheckoutCompletedLifetimeHasNoPeriodEnd(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)

	webhookRepo.On("ExistsByProviderEventID", "evt_1").Return(false, nil)
	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetByStripeSessionID", mock.Anything, "cs_life").
		Return(nil, errors.NewNotFoundError("subscription not found"))
	subRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *subscription.Subscription) bool {
		return s.Plan() == subvo.PlanLifetime && s.CurrentPeriodEnd() == nil && s.StripeSubscriptionID() == nil
	})).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	emailSvc.On("SendSubscriptionActivatedEmail", owner.Email().String(), "lifetime").Return(nil)
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_1", "checkout.session.completed", map[string]any{
			"id":       "cs_life",
			"metadata": map[string]string{"user_sid": owner.SID(), "plan": "lifetime"},
		}),
	})

	require.NoError(t, err)
	subRepo.AssertExpectations(t)
}

func TestProcessWebhook_RedeliveredEventShortCircuits(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	webhookRepo.On("ExistsByProviderEventID", "evt_seen").Return(true, nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_seen", "checkout.session.completed", map[string]any{"id": "cs_1"}),
	})

	require.NoError(t, err)
	subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	webhookRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProcessWebhook_CheckoutMissingMetadataFails(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	webhookRepo.On("ExistsByProviderEventID", "evt_1").Return(false, nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_1", "checkout.session.completed", map[string]any{"id": "cs_1"}),
	})

	require.Error(t, err)
	subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	webhookRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProcessWebhook_DuplicateSessionInsertTreatedAsProcessed(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)

	webhookRepo.On("ExistsByProviderEventID", "evt_2").Return(false, nil)
	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetByStripeSessionID", mock.Anything, "cs_1").
		Return(nil, errors.NewNotFoundError("subscription not found"))
	subRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.NewConflictError("subscription for this checkout session already exists"))
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_2", "checkout.session.completed", map[string]any{
			"id":       "cs_1",
			"metadata": map[string]string{"user_sid": owner.SID(), "plan": "monthly"},
		}),
	})

	require.NoError(t, err)
	emailSvc.AssertNotCalled(t, "SendSubscriptionActivatedEmail", mock.Anything, mock.Anything)
}

func TestProcessWebhook_SubscriptionUpdatedSyncsStatusAndPeriod(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")
	newEnd := biztime.NowUTC().Add(45 * 24 * time.Hour).Truncate(time.Second)

	webhookRepo.On("ExistsByProviderEventID", "evt_3").Return(false, nil)
	subRepo.On("GetByStripeSubscriptionID", mock.Anything, "sub_stripe_1").Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_3", "customer.subscription.updated", map[string]any{
			"id":                   "sub_stripe_1",
			"status":               "past_due",
			"cancel_at_period_end": true,
			"current_period_start": biztime.NowUTC().Unix(),
			"current_period_end":   newEnd.Unix(),
		}),
	})

	require.NoError(t, err)
	assert.Equal(t, subvo.StatusPastDue, sub.Status())
	assert.True(t, sub.CancelAtPeriodEnd())
	require.NotNil(t, sub.CurrentPeriodEnd())
	assert.Equal(t, newEnd.Unix(), sub.CurrentPeriodEnd().Unix())
}

func TestProcessWebhook_SubscriptionUpdatedReadsItemPeriods(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")
	newEnd := biztime.NowUTC().Add(60 * 24 * time.Hour).Truncate(time.Second)

	webhookRepo.On("ExistsByProviderEventID", "evt_4").Return(false, nil)
	subRepo.On("GetByStripeSubscriptionID", mock.Anything, "sub_stripe_1").Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_4", "customer.subscription.updated", map[string]any{
			"id":     "sub_stripe_1",
			"status": "active",
			"items": map[string]any{
				"data": []map[string]any{{
					"current_period_start": biztime.NowUTC().Unix(),
					"current_period_end":   newEnd.Unix(),
				}},
			},
		}),
	})

	require.NoError(t, err)
	assert.Equal(t, subvo.StatusActive, sub.Status())
	require.NotNil(t, sub.CurrentPeriodEnd())
	assert.Equal(t, newEnd.Unix(), sub.CurrentPeriodEnd().Unix())
}

func TestProcessWebhook_SubscriptionUpdatedUnknownIDIsNoOp(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	webhookRepo.On("ExistsByProviderEventID", "evt_5").Return(false, nil)
	subRepo.On("GetByStripeSubscriptionID", mock.Anything, "sub_ghost").
		Return(nil, errors.NewNotFoundError("subscription not found"))
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_5", "customer.subscription.updated", map[string]any{
			"id":     "sub_ghost",
			"status": "active",
		}),
	})

	require.NoError(t, err)
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessWebhook_SubscriptionDeletedCancelsNow(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")

	webhookRepo.On("ExistsByProviderEventID", "evt_6").Return(false, nil)
	subRepo.On("GetByStripeSubscriptionID", mock.Anything, "sub_stripe_1").Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	userRepo.On("GetByID", mock.Anything, uint(42)).Return(owner, nil)
	emailSvc.On("SendSubscriptionEndedEmail", owner.Email().String(), "monthly").Return(nil)
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_6", "customer.subscription.deleted", map[string]any{
			"id": "sub_stripe_1",
		}),
	})

	require.NoError(t, err)
	assert.Equal(t, subvo.StatusCancelled, sub.Status())
	assert.NotNil(t, sub.CancelledAt())
}

func TestProcessWebhook_PaymentFailedMarksPastDue(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")

	webhookRepo.On("ExistsByProviderEventID", "evt_7").Return(false, nil)
	subRepo.On("GetByStripeSubscriptionID", mock.Anything, "sub_stripe_1").Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	userRepo.On("GetByID", mock.Anything, uint(42)).Return(owner, nil)
	emailSvc.On("SendPaymentFailedEmail", owner.Email().String(), "monthly").Return(nil)
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_7", "invoice.payment_failed", map[string]any{
			"id": "in_1",
			"parent": map[string]any{
				"subscription_details": map[string]any{"subscription": "sub_stripe_1"},
			},
		}),
	})

	require.NoError(t, err)
	assert.Equal(t, subvo.StatusPastDue, sub.Status())
}

func TestProcessWebhook_PaymentFailedWithoutSubscriptionIsNoOp(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	webhookRepo.On("ExistsByProviderEventID", "evt_8").Return(false, nil)
	webhookRepo.On("Create", mock.AnythingOfType("*subscription.WebhookEvent")).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_8", "invoice.payment_failed", map[string]any{"id": "in_2"}),
	})

	require.NoError(t, err)
	subRepo.AssertNotCalled(t, "GetByStripeSubscriptionID", mock.Anything, mock.Anything)
}

func TestProcessWebhook_UnhandledEventIsRecorded(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	webhookRepo := new(mockWebhookEventRepository)
	userRepo := new(mockUserRepository)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	webhookRepo.On("ExistsByProviderEventID", "evt_9").Return(false, nil)
	webhookRepo.On("Create", mock.MatchedBy(func(e *subscription.WebhookEvent) bool {
		return e.EventType == "customer.created"
	})).Return(nil)

	uc := newWebhookUseCase(subRepo, webhookRepo, userRepo, entCache, emailSvc)
	err := uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Event: stripeEvent(t, "evt_9", "customer.created", map[string]any{"id": "cus_9"}),
	})

	require.NoError(t, err)
	webhookRepo.AssertExpectations(t)
}
