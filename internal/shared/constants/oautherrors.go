package constants

// OAuth error codes surfaced to the error redirect page. The raw provider
// error is logged server-side; users only ever see one of these.
const (
	OAuthErrorAccessDenied   = "access_denied"
	OAuthErrorMissingCode    = "missing_code"
	OAuthErrorMissingState   = "missing_state"
	OAuthErrorInvalidState   = "invalid_state"
	OAuthErrorExchangeFailed = "exchange_failed"
	OAuthErrorUserInfoFailed = "user_info_failed"
)

var oauthErrorMessages = map[string]string{
	OAuthErrorAccessDenied:   "Sign-in was cancelled. Please try again.",
	OAuthErrorMissingCode:    "The sign-in response was incomplete. Please try again.",
	OAuthErrorMissingState:   "The sign-in response was incomplete. Please try again.",
	OAuthErrorInvalidState:   "The sign-in request expired. Please try again.",
	OAuthErrorExchangeFailed: "We could not complete the sign-in. Please try again.",
	OAuthErrorUserInfoFailed: "We could not read your account profile. Please try again.",
}

// GetOAuthErrorMessage returns a user-facing message for a known OAuth error
// code, or a generic message for anything else.
func GetOAuthErrorMessage(code string) string {
	if msg, ok := oauthErrorMessages[code]; ok {
		return msg
	}
	return "Sign-in failed. Please try again."
}
