package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenUseCase exchanges a valid refresh token for a new token
// pair. The refresh token is single-use: the session's stored hash is
// replaced with the new token's hash on every refresh.
type RefreshTokenUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	jwtService  JWTService
	logger      logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	jwtService JWTService,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	refreshTokenHash := auth.HashToken(cmd.RefreshToken)

	session, err := uc.sessionRepo.GetByRefreshTokenHash(refreshTokenHash)
	if err != nil {
		uc.logger.Warnw("refresh token not recognized", "error", err)
		return nil, errors.NewUnauthorizedError("invalid or expired refresh token")
	}

	if session.IsExpired() {
		return nil, errors.NewUnauthorizedError("session has expired")
	}

	existingUser, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", session.UserID)
		return nil, fmt.Errorf("failed to validate user: %w", err)
	}
	if existingUser == nil {
		uc.logger.Warnw("user not found during token refresh", "user_id", session.UserID)
		return nil, errors.NewUnauthorizedError("user not found")
	}

	if !existingUser.CanPerformActions() {
		uc.logger.Warnw("inactive user attempted token refresh",
			"user_id", session.UserID,
			"status", existingUser.Status().String(),
		)
		return nil, errors.NewForbiddenError("account is not active")
	}

	tokens, err := uc.jwtService.Refresh(cmd.RefreshToken)
	if err != nil {
		uc.logger.Warnw("failed to refresh token", "error", err)
		return nil, errors.NewUnauthorizedError("invalid or expired refresh token")
	}

	session.RefreshTokenHash = auth.HashToken(tokens.RefreshToken)
	session.UpdateActivity()

	if err := uc.sessionRepo.Update(session); err != nil {
		uc.logger.Errorw("failed to update session", "error", err)
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	uc.logger.Infow("token refreshed", "user_id", session.UserID, "session_id", session.ID)

	return &RefreshTokenResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}
