package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/billing"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type ResumeSubscriptionCommand struct {
	UserSID string
}

// ResumeSubscriptionUseCase clears a pending cancel-at-period-end flag.
type ResumeSubscriptionUseCase struct {
	userRepo user.Repository
	subRepo  subscription.Repository
	gateway  billing.Gateway
	entCache cache.EntitlementCache
	logger   logger.Interface
}

func NewResumeSubscriptionUseCase(
	userRepo user.Repository,
	subRepo subscription.Repository,
	gateway billing.Gateway,
	entCache cache.EntitlementCache,
	logger logger.Interface,
) *ResumeSubscriptionUseCase {
	return &ResumeSubscriptionUseCase{
		userRepo: userRepo,
		subRepo:  subRepo,
		gateway:  gateway,
		entCache: entCache,
		logger:   logger,
	}
}

func (uc *ResumeSubscriptionUseCase) Execute(ctx context.Context, cmd ResumeSubscriptionCommand) (*dto.SubscriptionResponse, error) {
	userEntity, sub, err := activeSubscriptionForUser(ctx, uc.userRepo, uc.subRepo, cmd.UserSID)
	if err != nil {
		return nil, err
	}

	if !sub.CancelAtPeriodEnd() {
		return nil, errors.NewValidationError("no pending cancellation to resume")
	}
	if sub.StripeSubscriptionID() == nil {
		return nil, errors.NewInternalError("subscription has no provider reference")
	}

	if err := uc.gateway.ResumeCancellation(ctx, *sub.StripeSubscriptionID()); err != nil {
		uc.logger.Errorw("provider resume failed", "subscription_sid", sub.SID(), "error", err)
		return nil, fmt.Errorf("failed to resume subscription: %w", err)
	}

	if err := sub.ResumeCancellation(); err != nil {
		return nil, err
	}
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist resume", "subscription_sid", sub.SID(), "error", err)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	if err := uc.entCache.Invalidate(ctx, userEntity.ID()); err != nil {
		uc.logger.Warnw("failed to invalidate entitlement cache", "user_id", userEntity.ID(), "error", err)
	}

	uc.logger.Infow("subscription cancellation resumed", "subscription_sid", sub.SID(), "user_id", userEntity.ID())

	return dto.SubscriptionFromEntity(sub), nil
}
