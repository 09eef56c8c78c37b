package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

func TestInitiateOAuthLogin_StoresStateAndVerifier(t *testing.T) {
	client := new(mockOAuthClient)
	stateStore := new(mockStateStore)

	client.On("GetAuthURL", mock.AnythingOfType("string")).
		Return("https://accounts.google.com/o/oauth2/auth?state=x", "verifier-1", nil)
	stateStore.On("Set", mock.Anything, mock.AnythingOfType("string"), "verifier-1", "").Return(nil)

	uc := NewInitiateOAuthLoginUseCase(client, stateStore, logger.NewLogger())
	result, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{Provider: "google"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.State)
	assert.Contains(t, result.AuthURL, "accounts.google.com")
	stateStore.AssertCalled(t, "Set", mock.Anything, result.State, "verifier-1", "")
}

func TestInitiateOAuthLogin_RejectsUnsupportedProvider(t *testing.T) {
	client := new(mockOAuthClient)
	stateStore := new(mockStateStore)

	uc := NewInitiateOAuthLoginUseCase(client, stateStore, logger.NewLogger())
	_, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{Provider: "facebook"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported OAuth provider")
	stateStore.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInitiateOAuthLogin_FailsWhenStateStoreUnavailable(t *testing.T) {
	client := new(mockOAuthClient)
	stateStore := new(mockStateStore)

	client.On("GetAuthURL", mock.AnythingOfType("string")).
		Return("https://accounts.google.com/o/oauth2/auth", "verifier-1", nil)
	stateStore.On("Set", mock.Anything, mock.AnythingOfType("string"), "verifier-1", "").
		Return(assert.AnError)

	uc := NewInitiateOAuthLoginUseCase(client, stateStore, logger.NewLogger())
	_, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{Provider: "google"})

	require.Error(t, err)
}

func TestInitiateOAuthLogin_CarriesNextTarget(t *testing.T) {
	client := new(mockOAuthClient)
	stateStore := new(mockStateStore)

	client.On("GetAuthURL", mock.AnythingOfType("string")).
		Return("https://accounts.google.com/o/oauth2/auth?state=x", "verifier-1", nil)
	stateStore.On("Set", mock.Anything, mock.AnythingOfType("string"), "verifier-1", "/recordings").Return(nil)

	uc := NewInitiateOAuthLoginUseCase(client, stateStore, logger.NewLogger())
	result, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{Provider: "google", Next: "/recordings"})

	require.NoError(t, err)
	stateStore.AssertCalled(t, "Set", mock.Anything, result.State, "verifier-1", "/recordings")
}
