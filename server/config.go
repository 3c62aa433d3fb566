package server

import (
	"fmt"
	"log/slog"
)

// Config holds authorization server configuration
type Config struct {
	// Issuer is the server's issuer identifier (base URL)
	Issuer string

	// Audience is the resource identifier access tokens are bound to.
	// Defaults to Issuer + "/mcp".
	Audience string

	// Secret is the raw HMAC key used to sign access tokens. Required.
	Secret []byte

	// GrantTTL is how long authorization grants are valid
	GrantTTL int64 // seconds, default: 600 (10 minutes)

	// AccessTokenTTL is how long access tokens are valid
	AccessTokenTTL int64 // seconds, default: 3600 (1 hour)

	// DefaultScope is granted when a request carries no scope parameter
	DefaultScope string // default: "tools:invoke"

	// TrustProxy enables trusting X-Forwarded-For and X-Real-IP headers.
	// WARNING: Only enable behind a trusted reverse proxy.
	// Default: false
	TrustProxy bool

	// TrustedProxyCount is the number of trusted proxies in front of this
	// server, used with TrustProxy to extract the client IP.
	// Default: 1
	TrustedProxyCount int
}

// applyDefaults fills unset fields with their defaults and logs warnings
// for settings that weaken the security posture.
func applyDefaults(config *Config, logger *slog.Logger) *Config {
	if config.GrantTTL == 0 {
		config.GrantTTL = 600 // 10 minutes
	}
	if config.AccessTokenTTL == 0 {
		config.AccessTokenTTL = 3600 // 1 hour
	}
	if config.DefaultScope == "" {
		config.DefaultScope = "tools:invoke"
	}
	if config.Audience == "" && config.Issuer != "" {
		config.Audience = config.Issuer + "/mcp"
	}
	if config.TrustedProxyCount == 0 {
		config.TrustedProxyCount = 1
	}

	if config.TrustProxy {
		logger.Warn("Trusting proxy headers for client IP extraction",
			"risk", "IP spoofing if the proxy chain is not properly configured",
			"config", "TrustedProxyCount should match your proxy chain length")
	}

	return config
}

// validate rejects configurations the server cannot run with.
func (c *Config) validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("signing secret is required")
	}
	if len(c.Secret) < 32 {
		return fmt.Errorf("signing secret must be at least 32 bytes, got %d", len(c.Secret))
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer is required")
	}
	return nil
}
