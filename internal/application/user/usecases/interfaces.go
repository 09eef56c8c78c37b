package usecases

import (
	"context"

	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
)

// StateStore persists OAuth state parameters between the authorization
// redirect and the callback. VerifyAndGet consumes the state: a second
// call with the same state must fail.
type StateStore interface {
	Set(ctx context.Context, state string, codeVerifier string, next string) error
	VerifyAndGet(ctx context.Context, state string) (*cache.StateInfo, error)
}

// OAuthClient is the provider-side half of the OAuth flow.
type OAuthClient interface {
	GetAuthURL(state string) (authURL string, codeVerifier string, err error)
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (accessToken string, err error)
	GetUserInfo(ctx context.Context, accessToken string) (*auth.OAuthUserInfo, error)
}

// JWTService issues and validates session token pairs.
type JWTService interface {
	Generate(userSID string, sessionID string) (*auth.TokenPair, error)
	Verify(tokenString string) (*auth.Claims, error)
	Refresh(refreshTokenString string) (*auth.TokenPair, error)
	AccessExpMinutes() int
}
