package token

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrUnauthorized is the only error a Verifier returns. All verification
// failures collapse into it so a caller cannot distinguish a missing header
// from a bad signature or an expired token.
var ErrUnauthorized = errors.New("unauthorized")

const bearerPrefix = "Bearer "

// Verifier checks Authorization header values against the server secret.
// It is safe for concurrent use.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	logger   *slog.Logger
}

// NewVerifier creates a Verifier bound to the given secret and expected
// issuer/audience. A nil logger disables internal failure logging.
func NewVerifier(secret []byte, issuer, audience string, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Verifier{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		logger:   logger,
	}
}

// VerifyAuthorizationHeader validates the value of an Authorization header.
// The scheme must be "Bearer" (case-sensitive per RFC 6750 syntax as sent by
// compliant clients). On success the token's claims are returned; every
// failure mode returns ErrUnauthorized, with the underlying cause logged
// internally only.
func (v *Verifier) VerifyAuthorizationHeader(header string) (*Claims, error) {
	if header == "" {
		v.logger.Debug("authorization rejected", "reason", "missing_header")
		return nil, ErrUnauthorized
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		v.logger.Debug("authorization rejected", "reason", "wrong_scheme")
		return nil, ErrUnauthorized
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		v.logger.Debug("authorization rejected", "reason", "empty_token")
		return nil, ErrUnauthorized
	}

	claims, err := Verify(raw, v.secret, v.issuer, v.audience)
	if err != nil {
		v.logger.Debug("authorization rejected", "reason", "verification_failed", "error", err)
		return nil, ErrUnauthorized
	}
	return claims, nil
}
