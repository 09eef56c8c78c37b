package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	subvo "github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

func TestCancelSubscription_SchedulesProviderThenLocal(t *testing.T) {
	userRepo := new(mockUserRepository)
	subRepo := new(mockSubscriptionRepository)
	gateway := new(mockGateway)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetNewestActiveByUserID", mock.Anything, uint(42)).Return(sub, nil)
	gateway.On("ScheduleCancellation", mock.Anything, "sub_stripe_1").Return(nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)
	emailSvc.On("SendCancellationScheduledEmail", owner.Email().String(), "monthly", mock.AnythingOfType("string")).Return(nil)

	uc := NewCancelSubscriptionUseCase(userRepo, subRepo, gateway, entCache, emailSvc, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserSID: owner.SID()})

	require.NoError(t, err)
	assert.True(t, resp.CancelAtPeriodEnd)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, sub.CancelAtPeriodEnd())
	assert.Equal(t, subvo.StatusActive, sub.Status())
	gateway.AssertExpectations(t)
}

func TestCancelSubscription_RejectsLifetime(t *testing.T) {
	userRepo := new(mockUserRepository)
	subRepo := new(mockSubscriptionRepository)
	gateway := new(mockGateway)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanLifetime, "")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetNewestActiveByUserID", mock.Anything, uint(42)).Return(sub, nil)

	uc := NewCancelSubscriptionUseCase(userRepo, subRepo, gateway, entCache, emailSvc, logger.NewLogger())
	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserSID: owner.SID()})

	require.Error(t, err)
	assert.ErrorContains(t, err, "lifetime")
	gateway.AssertNotCalled(t, "ScheduleCancellation", mock.Anything, mock.Anything)
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelSubscription_NoActiveSubscription(t *testing.T) {
	userRepo := new(mockUserRepository)
	subRepo := new(mockSubscriptionRepository)
	gateway := new(mockGateway)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)
	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetNewestActiveByUserID", mock.Anything, uint(42)).
		Return(nil, errors.NewNotFoundError("subscription not found"))

	uc := NewCancelSubscriptionUseCase(userRepo, subRepo, gateway, entCache, emailSvc, logger.NewLogger())
	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserSID: owner.SID()})

	require.ErrorIs(t, err, subscription.ErrNoActiveSubscription)
}

func TestCancelSubscription_ProviderFailureLeavesLocalUntouched(t *testing.T) {
	userRepo := new(mockUserRepository)
	subRepo := new(mockSubscriptionRepository)
	gateway := new(mockGateway)
	entCache := new(mockEntitlementCache)
	emailSvc := new(mockEmailService)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetNewestActiveByUserID", mock.Anything, uint(42)).Return(sub, nil)
	gateway.On("ScheduleCancellation", mock.Anything, "sub_stripe_1").Return(assert.AnError)

	uc := NewCancelSubscriptionUseCase(userRepo, subRepo, gateway, entCache, emailSvc, logger.NewLogger())
	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserSID: owner.SID()})

	require.Error(t, err)
	assert.False(t, sub.CancelAtPeriodEnd())
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResumeSubscription_ClearsPendingCancellation(t *testing.T) {
	userRepo := new(mockUserRepository)
	subRepo := new(mockSubscriptionRepository)
	gateway := new(mockGateway)
	entCache := new(mockEntitlementCache)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")
	require.NoError(t, sub.ScheduleCancellation())

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetNewestActiveByUserID", mock.Anything, uint(42)).Return(sub, nil)
	gateway.On("ResumeCancellation", mock.Anything, "sub_stripe_1").Return(nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	entCache.On("Invalidate", mock.Anything, uint(42)).Return(nil)

	uc := NewResumeSubscriptionUseCase(userRepo, subRepo, gateway, entCache, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), ResumeSubscriptionCommand{UserSID: owner.SID()})

	require.NoError(t, err)
	assert.False(t, resp.CancelAtPeriodEnd)
	assert.False(t, sub.CancelAtPeriodEnd())
}

func TestResumeSubscription_FailsWithoutPendingCancellation(t *testing.T) {
	userRepo := new(mockUserRepository)
	subRepo := new(mockSubscriptionRepository)
	gateway := new(mockGateway)
	entCache := new(mockEntitlementCache)

	owner := newTestUser(t, 42)
	sub := newActiveSubscription(t, 42, subvo.PlanMonthly, "sub_stripe_1")

	userRepo.On("GetBySID", mock.Anything, owner.SID()).Return(owner, nil)
	subRepo.On("GetNewestActiveByUserID", mock.Anything, uint(42)).Return(sub, nil)

	uc := NewResumeSubscriptionUseCase(userRepo, subRepo, gateway, entCache, logger.NewLogger())
	_, err := uc.Execute(context.Background(), ResumeSubscriptionCommand{UserSID: owner.SID()})

	require.Error(t, err)
	gateway.AssertNotCalled(t, "ResumeCancellation", mock.Anything, mock.Anything)
}
