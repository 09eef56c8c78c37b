package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type InitiateOAuthLoginCommand struct {
	Provider string
	// Next is the in-app path the frontend should land on after login.
	Next string
}

type InitiateOAuthLoginResult struct {
	AuthURL string
	State   string
}

type InitiateOAuthLoginUseCase struct {
	googleClient OAuthClient
	stateStore   StateStore
	logger       logger.Interface
}

func NewInitiateOAuthLoginUseCase(
	googleClient OAuthClient,
	stateStore StateStore,
	logger logger.Interface,
) *InitiateOAuthLoginUseCase {
	return &InitiateOAuthLoginUseCase{
		googleClient: googleClient,
		stateStore:   stateStore,
		logger:       logger,
	}
}

func (uc *InitiateOAuthLoginUseCase) Execute(ctx context.Context, cmd InitiateOAuthLoginCommand) (*InitiateOAuthLoginResult, error) {
	client, err := uc.clientFor(cmd.Provider)
	if err != nil {
		return nil, err
	}

	state, err := auth.GenerateState()
	if err != nil {
		uc.logger.Errorw("failed to generate state", "error", err)
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	authURL, codeVerifier, err := client.GetAuthURL(state)
	if err != nil {
		uc.logger.Errorw("failed to build auth URL", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to build auth URL: %w", err)
	}

	if err := uc.stateStore.Set(ctx, state, codeVerifier, cmd.Next); err != nil {
		uc.logger.Errorw("failed to store OAuth state", "error", err)
		return nil, fmt.Errorf("failed to store state: %w", err)
	}

	uc.logger.Infow("OAuth login initiated", "provider", cmd.Provider)

	return &InitiateOAuthLoginResult{
		AuthURL: authURL,
		State:   state,
	}, nil
}

func (uc *InitiateOAuthLoginUseCase) clientFor(provider string) (OAuthClient, error) {
	switch provider {
	case "google":
		return uc.googleClient, nil
	default:
		return nil, fmt.Errorf("unsupported OAuth provider: %s", provider)
	}
}
