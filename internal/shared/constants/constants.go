package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderUserAgent       = "User-Agent"
	HeaderStripeSignature = "Stripe-Signature"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers         = "users"
	TableOAuthAccounts = "oauth_accounts"
	TableSessions      = "sessions"
	TableSubscriptions = "subscriptions"
	TableWebhookEvents = "webhook_events"
	TableRecordings    = "recordings"
	TableCategories    = "categories"

	// SessionTTLDays bounds a login session; it matches the refresh token
	// lifetime so an expired session never holds a usable refresh token.
	SessionTTLDays = 30

	// Billing
	// Monthly subscriptions are granted a fixed 30-day period on checkout
	// completion; the provider's subscription.updated events carry the
	// authoritative period boundaries afterwards.
	MonthlyPeriodDays = 30

	// FreeRecordingLimitSeconds caps a single recording for users without an
	// active subscription. Entitled users are uncapped.
	FreeRecordingLimitSeconds = 120
)
