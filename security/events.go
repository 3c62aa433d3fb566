package security

// Event type constants for security audit logging.
// These constants ensure consistency across the codebase and prevent typos
// when logging security-relevant events.
const (
	// Authorization flow events

	// EventGrantIssued is logged when an authorization grant is issued
	EventGrantIssued = "grant_issued"

	// EventGrantRedeemed is logged when a grant is exchanged for an access token
	EventGrantRedeemed = "grant_redeemed"

	// EventGrantRejected is logged when a grant exchange is rejected
	// (not found, expired, already used, or mismatched parameters)
	EventGrantRejected = "grant_rejected"

	// Token lifecycle events

	// EventTokenIssued is logged when a new access token is issued to a client
	EventTokenIssued = "token_issued"

	// EventAuthFailure is logged when bearer authentication fails
	EventAuthFailure = "auth_failure"

	// Validation events

	// EventPKCEValidationFailed is logged when a PKCE verifier does not match
	// the challenge bound to the grant
	EventPKCEValidationFailed = "pkce_validation_failed"

	// EventRateLimitExceeded is logged when a rate limit rejects a request
	EventRateLimitExceeded = "rate_limit_exceeded"
)
