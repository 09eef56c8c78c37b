package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/billing/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/subscription"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type GetEntitlementCommand struct {
	UserSID string
}

// GetEntitlementUseCase answers "what can this user do right now". The
// stored subscription status is never eagerly expired: a monthly row whose
// period has lapsed simply stops granting access here, without a write.
type GetEntitlementUseCase struct {
	userRepo user.Repository
	subRepo  subscription.Repository
	entCache cache.EntitlementCache
	logger   logger.Interface
}

func NewGetEntitlementUseCase(
	userRepo user.Repository,
	subRepo subscription.Repository,
	entCache cache.EntitlementCache,
	logger logger.Interface,
) *GetEntitlementUseCase {
	return &GetEntitlementUseCase{
		userRepo: userRepo,
		subRepo:  subRepo,
		entCache: entCache,
		logger:   logger,
	}
}

func (uc *GetEntitlementUseCase) Execute(ctx context.Context, cmd GetEntitlementCommand) (*dto.EntitlementResponse, error) {
	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "sid", cmd.UserSID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	ent, err := uc.entitlementFor(ctx, userEntity.ID())
	if err != nil {
		return nil, err
	}

	resp := &dto.EntitlementResponse{
		HasSubscription:     ent.HasSubscription,
		Plan:                ent.Plan,
		CurrentPeriodEnd:    ent.PeriodEnd,
		CancelAtPeriodEnd:   ent.CancelAtPeriodEnd,
		MaxRecordingSeconds: constants.FreeRecordingLimitSeconds,
	}
	if ent.HasSubscription {
		resp.MaxRecordingSeconds = 0 // unlimited
	}
	return resp, nil
}

// HasAccess reports whether the user currently holds an active entitlement.
// It is the duration-cap check used when saving recordings.
func (uc *GetEntitlementUseCase) HasAccess(ctx context.Context, userID uint) (bool, error) {
	ent, err := uc.entitlementFor(ctx, userID)
	if err != nil {
		return false, err
	}
	return ent.HasSubscription, nil
}

func (uc *GetEntitlementUseCase) entitlementFor(ctx context.Context, userID uint) (*cache.CachedEntitlement, error) {
	now := biztime.NowUTC()

	cached, err := uc.entCache.Get(ctx, userID)
	if err != nil {
		uc.logger.Warnw("entitlement cache unavailable", "user_id", userID, "error", err)
	} else if cached != nil {
		if cached.NotFound {
			return &cache.CachedEntitlement{}, nil
		}
		// The TTL is clamped to the period end, but re-check the clock so a
		// clamped-to-zero edge never grants stale access.
		if cached.PeriodEnd == nil || now.Before(*cached.PeriodEnd) {
			return cached, nil
		}
	}

	sub, err := uc.subRepo.GetNewestActiveByUserID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.setNullMarker(ctx, userID)
			return &cache.CachedEntitlement{}, nil
		}
		uc.logger.Errorw("failed to get active subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	if !sub.HasAccessAt(now) {
		// Lapsed monthly period; the row keeps its stored status.
		uc.setNullMarker(ctx, userID)
		return &cache.CachedEntitlement{}, nil
	}

	ent := &cache.CachedEntitlement{
		HasSubscription:   true,
		Plan:              sub.Plan().String(),
		PeriodEnd:         sub.CurrentPeriodEnd(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd(),
	}
	if err := uc.entCache.Set(ctx, userID, ent); err != nil {
		uc.logger.Warnw("failed to cache entitlement", "user_id", userID, "error", err)
	}
	return ent, nil
}

func (uc *GetEntitlementUseCase) setNullMarker(ctx context.Context, userID uint) {
	if err := uc.entCache.SetNullMarker(ctx, userID); err != nil {
		uc.logger.Warnw("failed to set entitlement null marker", "user_id", userID, "error", err)
	}
}
