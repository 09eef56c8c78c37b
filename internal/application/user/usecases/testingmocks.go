package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/auth"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/cache"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockOAuthAccountRepository struct {
	mock.Mock
}

func (m *mockOAuthAccountRepository) Create(account *user.OAuthAccount) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *mockOAuthAccountRepository) GetByProviderAndUserID(provider, providerUserID string) (*user.OAuthAccount, error) {
	args := m.Called(provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.OAuthAccount), args.Error(1)
}

func (m *mockOAuthAccountRepository) GetByUserID(userID uint) ([]*user.OAuthAccount, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.OAuthAccount), args.Error(1)
}

func (m *mockOAuthAccountRepository) Update(account *user.OAuthAccount) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *mockOAuthAccountRepository) Delete(accountID uint) error {
	args := m.Called(accountID)
	return args.Error(0)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(session *user.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByID(sessionID string) (*user.Session, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *mockSessionRepository) GetByUserID(userID uint) ([]*user.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.Session), args.Error(1)
}

func (m *mockSessionRepository) GetByRefreshTokenHash(refreshTokenHash string) (*user.Session, error) {
	args := m.Called(refreshTokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Session), args.Error(1)
}

func (m *mockSessionRepository) Update(session *user.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *mockSessionRepository) Delete(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteExpired() error {
	args := m.Called()
	return args.Error(0)
}

type mockOAuthClient struct {
	mock.Mock
}

func (m *mockOAuthClient) GetAuthURL(state string) (string, string, error) {
	args := m.Called(state)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockOAuthClient) ExchangeCode(ctx context.Context, code string, codeVerifier string) (string, error) {
	args := m.Called(ctx, code, codeVerifier)
	return args.String(0), args.Error(1)
}

func (m *mockOAuthClient) GetUserInfo(ctx context.Context, accessToken string) (*auth.OAuthUserInfo, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.OAuthUserInfo), args.Error(1)
}

type mockStateStore struct {
	mock.Mock
}

func (m *mockStateStore) Set(ctx context.Context, state string, codeVerifier string, next string) error {
	args := m.Called(ctx, state, codeVerifier, next)
	return args.Error(0)
}

func (m *mockStateStore) VerifyAndGet(ctx context.Context, state string) (*cache.StateInfo, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.StateInfo), args.Error(1)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) Generate(userSID string, sessionID string) (*auth.TokenPair, error) {
	args := m.Called(userSID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *mockJWTService) Verify(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *mockJWTService) Refresh(refreshTokenString string) (*auth.TokenPair, error) {
	args := m.Called(refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *mockJWTService) AccessExpMinutes() int {
	args := m.Called()
	return args.Int(0)
}
