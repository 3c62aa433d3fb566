package gate

import (
	"log/slog"
	"strings"
	"time"
)

// Config holds the HTTP handler configuration. Flow-level settings
// (issuer, signing secret, TTLs) live on server.Config; this struct only
// covers concerns of the HTTP adapter itself.
type Config struct {
	// SupportedScopes are advertised in discovery metadata.
	// Default: ["tools:invoke"]
	SupportedScopes []string

	// RateLimit configures per-IP rate limiting across all endpoints.
	RateLimit RateLimitConfig

	// HeartbeatInterval is how often the SSE stream emits keepalive
	// comments. Default: 30 seconds.
	HeartbeatInterval time.Duration

	// EnableAuditLogging enables security audit logging.
	// Logs grant and token operations and violations (sensitive data hashed).
	EnableAuditLogging bool

	// Logger for structured logging (optional, uses default if not provided)
	Logger *slog.Logger
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Rate is requests per second allowed per IP. Zero disables limiting.
	Rate int

	// Burst is the maximum burst size allowed per IP.
	Burst int
}

// DefaultConfig returns a Config with sensible defaults applied.
func DefaultConfig() *Config {
	return &Config{
		SupportedScopes:   []string{"tools:invoke"},
		HeartbeatInterval: 30 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	if len(c.SupportedScopes) == 0 {
		c.SupportedScopes = []string{"tools:invoke"}
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// scopeString returns the supported scopes as a space-separated string for
// WWW-Authenticate challenges.
func (c *Config) scopeString() string {
	return strings.Join(c.SupportedScopes, " ")
}
