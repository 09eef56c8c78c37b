package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	vo "github.com/dreamtalk-inc/dreamtalk/internal/domain/user/valueobjects"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/utils"
)

type HandleOAuthCallbackCommand struct {
	Provider   string
	Code       string
	State      string
	DeviceName string
	IPAddress  string
	UserAgent  string
}

type HandleOAuthCallbackResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	IsNewUser    bool
	// Next is the post-login target captured when the flow started.
	Next string
}

type HandleOAuthCallbackUseCase struct {
	userRepo     user.Repository
	oauthRepo    user.OAuthAccountRepository
	sessionRepo  user.SessionRepository
	googleClient OAuthClient
	stateStore   StateStore
	jwtService   JWTService
	logger       logger.Interface
}

func NewHandleOAuthCallbackUseCase(
	userRepo user.Repository,
	oauthRepo user.OAuthAccountRepository,
	sessionRepo user.SessionRepository,
	googleClient OAuthClient,
	stateStore StateStore,
	jwtService JWTService,
	logger logger.Interface,
) *HandleOAuthCallbackUseCase {
	return &HandleOAuthCallbackUseCase{
		userRepo:     userRepo,
		oauthRepo:    oauthRepo,
		sessionRepo:  sessionRepo,
		googleClient: googleClient,
		stateStore:   stateStore,
		jwtService:   jwtService,
		logger:       logger,
	}
}

func (uc *HandleOAuthCallbackUseCase) Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*HandleOAuthCallbackResult, error) {
	stateInfo, err := uc.stateStore.VerifyAndGet(ctx, cmd.State)
	if err != nil {
		uc.logger.Warnw("invalid or expired OAuth state", "error", err)
		return nil, errors.NewUnauthorizedError("invalid or expired state parameter")
	}

	var client OAuthClient
	switch cmd.Provider {
	case "google":
		client = uc.googleClient
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported OAuth provider: %s", cmd.Provider))
	}

	accessToken, err := client.ExchangeCode(ctx, cmd.Code, stateInfo.CodeVerifier)
	if err != nil {
		uc.logger.Errorw("failed to exchange code", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	userInfo, err := client.GetUserInfo(ctx, accessToken)
	if err != nil {
		uc.logger.Errorw("failed to get user info", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	existingUser, isNewUser, err := uc.ensureUser(ctx, cmd.Provider, userInfo)
	if err != nil {
		return nil, err
	}

	if !existingUser.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is not active")
	}

	expiresAt := biztime.NowUTC().Add(constants.SessionTTLDays * 24 * time.Hour)
	session, err := user.NewSession(existingUser.ID(), cmd.DeviceName, cmd.IPAddress, cmd.UserAgent, expiresAt)
	if err != nil {
		uc.logger.Errorw("failed to create session", "error", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	tokens, err := uc.jwtService.Generate(existingUser.SID(), session.ID)
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session.RefreshTokenHash = auth.HashToken(tokens.RefreshToken)

	if err := uc.sessionRepo.Create(session); err != nil {
		uc.logger.Errorw("failed to persist session", "error", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	uc.logger.Infow("OAuth login successful",
		"user_id", existingUser.ID(),
		"email", utils.MaskEmail(existingUser.Email().String()),
		"provider", cmd.Provider,
		"is_new_user", isNewUser,
	)

	return &HandleOAuthCallbackResult{
		User:         existingUser,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		IsNewUser:    isNewUser,
		Next:         stateInfo.Next,
	}, nil
}

// ensureUser resolves the provider identity to a local user, creating the
// user and the provider link on first sight.
func (uc *HandleOAuthCallbackUseCase) ensureUser(ctx context.Context, provider string, userInfo *auth.OAuthUserInfo) (*user.User, bool, error) {
	oauthAccount, err := uc.oauthRepo.GetByProviderAndUserID(provider, userInfo.ProviderID)
	if err != nil {
		uc.logger.Errorw("failed to get oauth account", "error", err)
		return nil, false, fmt.Errorf("failed to get oauth account: %w", err)
	}

	if oauthAccount != nil {
		existingUser, err := uc.userRepo.GetByID(ctx, oauthAccount.UserID)
		if err != nil {
			uc.logger.Errorw("failed to get user", "error", err, "user_id", oauthAccount.UserID)
			return nil, false, fmt.Errorf("failed to get user: %w", err)
		}
		if existingUser == nil {
			return nil, false, errors.NewNotFoundError("user not found for linked account")
		}

		oauthAccount.RecordLogin()
		if updateErr := uc.oauthRepo.Update(oauthAccount); updateErr != nil {
			uc.logger.Warnw("failed to update oauth account", "error", updateErr)
		}

		return existingUser, false, nil
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, false, fmt.Errorf("failed to get user by email: %w", err)
	}

	isNewUser := false
	if existingUser == nil {
		email, err := vo.NewEmail(userInfo.Email)
		if err != nil {
			return nil, false, errors.NewValidationError("invalid email from provider", err.Error())
		}

		// Google may omit the display name; fall back to the mailbox name.
		displayName := userInfo.Name
		if displayName == "" {
			displayName = email.LocalPart()
		}
		name, err := vo.NewName(displayName)
		if err != nil {
			return nil, false, errors.NewValidationError("invalid name from provider", err.Error())
		}

		existingUser, err = user.NewUser(email, name, userInfo.Picture)
		if err != nil {
			uc.logger.Errorw("failed to create user", "error", err)
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}

		if err := uc.userRepo.Create(ctx, existingUser); err != nil {
			uc.logger.Errorw("failed to persist user", "error", err)
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}

		isNewUser = true
	}

	newAccount, err := user.NewOAuthAccount(existingUser.ID(), provider, userInfo.ProviderID, userInfo.Email)
	if err != nil {
		uc.logger.Errorw("failed to build oauth account", "error", err)
		return nil, false, fmt.Errorf("failed to create oauth account: %w", err)
	}
	newAccount.ProviderAvatarURL = userInfo.Picture
	if userInfo.RawJSON != "" {
		raw := userInfo.RawJSON
		newAccount.RawUserInfo = &raw
	}

	if err := uc.oauthRepo.Create(newAccount); err != nil {
		uc.logger.Errorw("failed to persist oauth account", "error", err)
		return nil, false, fmt.Errorf("failed to create oauth account: %w", err)
	}

	return existingUser, isNewUser, nil
}
