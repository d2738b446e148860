package security

// Event type constants for security audit logging.
// These constants ensure consistency across the codebase and prevent typos
// when logging security-relevant events.
const (
	// Login flow events

	// EventAuthorizationStarted is logged when an authorization URI is built for a login attempt
	EventAuthorizationStarted = "authorization_started"

	// EventCodeExchanged is logged when an authorization code is exchanged for an access token
	EventCodeExchanged = "code_exchanged"

	// EventUserInfoFetched is logged when a user profile is retrieved from the provider
	EventUserInfoFetched = "user_info_fetched"

	// Rejection events

	// EventAuthCodeRejected is logged when the token endpoint returns no access token
	// (code invalid, expired or already consumed)
	EventAuthCodeRejected = "auth_code_rejected"

	// EventAccessTokenRejected is logged when the provider answers 401 for an access token
	EventAccessTokenRejected = "access_token_rejected" //nolint:gosec // G101: False positive - this is an event type name, not a credential

	// Configuration events

	// EventInvalidConfig is logged when a stored connector configuration fails validation
	EventInvalidConfig = "invalid_config"
)
