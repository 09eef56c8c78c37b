package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	userdto "github.com/dreamtalk-inc/dreamtalk/internal/application/user/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/application/user/usecases"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/config"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/utils"
)

// AuthHandler serves the Google sign-in flow, token refresh, and logout.
type AuthHandler struct {
	initiateOAuthUseCase  initiateOAuthUseCase
	handleOAuthUseCase    handleOAuthCallbackUseCase
	refreshTokenUseCase   refreshTokenUseCase
	logoutUseCase         logoutUseCase
	getCurrentUserUseCase getCurrentUserUseCase
	logger                logger.Interface
	cookieConfig          config.CookieConfig
	jwtConfig             config.JWTConfig
	frontendCallbackURL   string
}

func NewAuthHandler(
	initiateOAuthUC initiateOAuthUseCase,
	handleOAuthUC handleOAuthCallbackUseCase,
	refreshTokenUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	getCurrentUserUC getCurrentUserUseCase,
	logger logger.Interface,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	frontendCallbackURL string,
) *AuthHandler {
	return &AuthHandler{
		initiateOAuthUseCase:  initiateOAuthUC,
		handleOAuthUseCase:    handleOAuthUC,
		refreshTokenUseCase:   refreshTokenUC,
		logoutUseCase:         logoutUC,
		getCurrentUserUseCase: getCurrentUserUC,
		logger:                logger,
		cookieConfig:          cookieConfig,
		jwtConfig:             jwtConfig,
		frontendCallbackURL:   frontendCallbackURL,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// InitiateOAuth redirects the browser to the provider's consent screen.
// API clients can pass ?mode=json to receive the URL instead.
func (h *AuthHandler) InitiateOAuth(c *gin.Context) {
	provider := c.Param("provider")

	result, err := h.initiateOAuthUseCase.Execute(c.Request.Context(), usecases.InitiateOAuthLoginCommand{
		Provider: provider,
		Next:     sanitizeNextTarget(c.Query("next")),
	})
	if err != nil {
		h.logger.Errorw("OAuth initiation failed", "error", err, "provider", provider)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if c.Query("mode") == "json" {
		utils.SuccessResponse(c, http.StatusOK, "", userdto.AuthURLResponse{
			AuthURL: result.AuthURL,
			State:   result.State,
		})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

func (h *AuthHandler) HandleOAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")

	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("OAuth provider returned error",
			"provider", provider,
			"error_code", errParam,
			"error_description", c.Query("error_description"),
		)
		h.failLogin(c, "sign-in was cancelled or denied")
		return
	}

	if code == "" || state == "" {
		h.logger.Warnw("OAuth callback missing parameters", "provider", provider)
		h.failLogin(c, "invalid sign-in response")
		return
	}

	cmd := usecases.HandleOAuthCallbackCommand{
		Provider:   provider,
		Code:       code,
		State:      state,
		DeviceName: c.GetHeader("User-Agent"),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}

	result, err := h.handleOAuthUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("OAuth callback failed", "error", err, "provider", provider)
		h.failLogin(c, "sign-in failed, please try again")
		return
	}

	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.cookieConfig, result.AccessToken, result.RefreshToken, accessMaxAge, refreshMaxAge)

	if h.frontendCallbackURL != "" {
		target := fmt.Sprintf("%s?login=success&is_new_user=%t", h.frontendCallbackURL, result.IsNewUser)
		if result.Next != "" {
			target += "&next=" + url.QueryEscape(result.Next)
		}
		c.Redirect(http.StatusTemporaryRedirect, target)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", userdto.LoginResponse{
		User:      userdto.UserFromEntity(result.User),
		ExpiresIn: result.ExpiresIn,
		IsNewUser: result.IsNewUser,
	})
}

// sanitizeNextTarget keeps only in-app paths. Anything that could leave the
// site (absolute URLs, protocol-relative //host forms) is dropped.
func sanitizeNextTarget(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}

// failLogin sends the browser back to the frontend with an error message,
// or answers JSON when no frontend callback is configured.
func (h *AuthHandler) failLogin(c *gin.Context, message string) {
	if h.frontendCallbackURL != "" {
		c.Redirect(http.StatusTemporaryRedirect,
			fmt.Sprintf("%s?login=error&message=%s", h.frontendCallbackURL, url.QueryEscape(message)))
		return
	}
	utils.ErrorResponse(c, http.StatusUnauthorized, message)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)

	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh token is required")
		return
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{RefreshToken: refreshToken})
	if err != nil {
		h.logger.Warnw("token refresh failed", "error", err)
		utils.ClearAuthCookies(c, h.cookieConfig)
		utils.ErrorResponseWithError(c, err)
		return
	}

	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.cookieConfig, result.AccessToken, result.RefreshToken, accessMaxAge, refreshMaxAge)

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", userdto.RefreshResponse{
		ExpiresIn: result.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(constants.ContextKeySessionID)

	if err := h.logoutUseCase.Execute(usecases.LogoutCommand{SessionID: sessionID}); err != nil {
		h.logger.Errorw("logout failed", "error", err, "session_id", sessionID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userSID := c.GetString(constants.ContextKeyUserID)
	if userSID == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("not authenticated"))
		return
	}

	resp, err := h.getCurrentUserUseCase.Execute(c.Request.Context(), userSID)
	if err != nil {
		h.logger.Errorw("failed to get current user", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
