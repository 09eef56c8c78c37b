package handlers

import (
	"context"

	userdto "github.com/dreamtalk-inc/dreamtalk/internal/application/user/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type initiateOAuthUseCase interface {
	Execute(ctx context.Context, cmd usecases.InitiateOAuthLoginCommand) (*usecases.InitiateOAuthLoginResult, error)
}

type handleOAuthCallbackUseCase interface {
	Execute(ctx context.Context, cmd usecases.HandleOAuthCallbackCommand) (*usecases.HandleOAuthCallbackResult, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*usecases.RefreshTokenResult, error)
}

type logoutUseCase interface {
	Execute(cmd usecases.LogoutCommand) error
}

type getCurrentUserUseCase interface {
	Execute(ctx context.Context, userSID string) (*userdto.UserResponse, error)
}
