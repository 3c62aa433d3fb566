package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLifetime is how long issued access tokens remain valid.
const DefaultLifetime = time.Hour

// Token errors. Callers outside this package should not branch on the
// specific failure; the Verifier collapses all of them to ErrUnauthorized
// before they cross the trust boundary.
var (
	// ErrMalformed indicates the token is not a structurally valid JWT
	// (e.g. not exactly three segments).
	ErrMalformed = errors.New("malformed token")

	// ErrInvalidSignature indicates the HMAC does not validate against the
	// server secret.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired indicates the token's expiry instant is not in the future.
	ErrExpired = errors.New("token expired")

	// ErrInvalidClaims indicates issuer or audience do not match this server.
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Claims is the claim set carried by an access token. Subject is the client
// identifier the grant was issued to; Issuer and Audience bind the token to
// this server and its resource identity.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// NewClaims builds the claim set for a freshly redeemed grant.
func NewClaims(subject, issuer, audience, scope string, lifetime time.Duration) Claims {
	now := time.Now()
	return Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
}

// Sign produces a compact HS256 JWT over claims using secret as the raw
// HMAC key.
func Sign(claims Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("signing secret is required")
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact JWT. The signature is recomputed
// against secret; expiry must be strictly in the future; issuer and audience
// must match when expected values are provided.
func Verify(raw string, secret []byte, issuer, audience string) (*Claims, error) {
	if strings.Count(raw, ".") != 2 {
		return nil, ErrMalformed
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrInvalidClaims
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if !tok.Valid {
		return nil, ErrInvalidSignature
	}

	return claims, nil
}
