package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/billing"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/email"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	UserSID string
}

// CancelSubscriptionUseCase schedules a monthly subscription to end at the
// period boundary. The provider is updated first; only then is the flag
// mirrored locally, so a provider failure leaves both sides unchanged.
// Access is untouched until the period actually ends.
type CancelSubscriptionUseCase struct {
	userRepo user.Repository
	subRepo  subscription.Repository
	gateway  billing.Gateway
	entCache cache.EntitlementCache
	emailSvc email.Service
	logger   logger.Interface
}

func NewCancelSubscriptionUseCase(
	userRepo user.Repository,
	subRepo subscription.Repository,
	gateway billing.Gateway,
	entCache cache.EntitlementCache,
	emailSvc email.Service,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		userRepo: userRepo,
		subRepo:  subRepo,
		gateway:  gateway,
		entCache: entCache,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionResponse, error) {
	userEntity, sub, err := activeSubscriptionForUser(ctx, uc.userRepo, uc.subRepo, cmd.UserSID)
	if err != nil {
		return nil, err
	}

	if sub.IsLifetime() {
		return nil, subscription.ErrLifetimeNotCancellable
	}
	if sub.CancelAtPeriodEnd() {
		return nil, errors.NewConflictError("cancellation is already scheduled")
	}
	if sub.StripeSubscriptionID() == nil {
		return nil, errors.NewInternalError("subscription has no provider reference")
	}

	if err := uc.gateway.ScheduleCancellation(ctx, *sub.StripeSubscriptionID()); err != nil {
		uc.logger.Errorw("provider cancellation failed", "subscription_sid", sub.SID(), "error", err)
		return nil, fmt.Errorf("failed to schedule cancellation: %w", err)
	}

	if err := sub.ScheduleCancellation(); err != nil {
		return nil, err
	}
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist cancellation flag", "subscription_sid", sub.SID(), "error", err)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	if err := uc.entCache.Invalidate(ctx, userEntity.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate entitlement cache", "user_id", userEntity.ID(), "error", err)
	}

	accessUntil := ""
	if end := sub.CurrentPeriodEnd(); end != nil {
		accessUntil = end.Format("January 2, 2006")
	}
	if sendErr := uc.emailSvc.SendCancellationScheduledEmail(userEntity.Email().String(), sub.Plan().String(), accessUntil); sendErr != nil {
		uc.logger.Warnw("failed to send cancellation email", "user_id", userEntity.ID(), "error", sendErr)
	}

	uc.logger.Infow("subscription cancellation scheduled", "subscription_sid", sub.SID(), "user_id", userEntity.ID())

	return dto.SubscriptionFromEntity(sub), nil
}

// activeSubscriptionForUser resolves the caller and their newest active
// subscription row.
func activeSubscriptionForUser(
	ctx context.Context,
	userRepo user.Repository,
	subRepo subscription.Repository,
	userSID string,
) (*user.User, *subscription.Subscription, error) {
	userEntity, err := userRepo.GetBySID(ctx, userSID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, nil, errors.NewNotFoundError("user not found")
	}

	sub, err := subRepo.GetNewestActiveByUserID(ctx, userEntity.ID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil, subscription.ErrNoActiveSubscription
		}
		return nil, nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return userEntity, sub, nil
}
