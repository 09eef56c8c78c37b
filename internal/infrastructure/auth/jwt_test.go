package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate("usr_abc123", "session-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr_abc123", claims.UserSID)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestJWTService_Verify_WrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", 15, 7)
	other := NewJWTService("secret-b", 15, 7)

	pair, err := svc.Generate("usr_abc123", "session-1")
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_Refresh(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate("usr_abc123", "session-1")
	require.NoError(t, err)

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		newPair, err := svc.Refresh(pair.RefreshToken)
		require.NoError(t, err)

		claims, err := svc.Verify(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "usr_abc123", claims.UserSID)
		assert.Equal(t, "session-1", claims.SessionID)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.Refresh(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("token-a")
	h2 := HashToken("token-a")
	h3 := HashToken("token-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}
