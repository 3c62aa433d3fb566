package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
)

// PKCE constants (RFC 7636)
const (
	PKCEMethodS256 = "S256"

	MinCodeVerifierLength = 43
	MaxCodeVerifierLength = 128
)

// PKCE verification errors.
var (
	// ErrUnsupportedPKCEMethod indicates a code_challenge_method other than S256.
	ErrUnsupportedPKCEMethod = errors.New("unsupported code_challenge_method")

	// ErrPKCEMismatch indicates the verifier does not hash to the stored challenge.
	ErrPKCEMismatch = errors.New("code_verifier does not match code_challenge")
)

// VerifyPKCEChallenge checks a PKCE code verifier against the challenge that
// was bound to the grant at authorization time. Only the S256 method is
// supported: challenge == base64url(sha256(verifier)) without padding.
//
// The comparison is constant time to avoid leaking challenge bytes through
// timing side channels.
func VerifyPKCEChallenge(verifier, challenge, method string) error {
	if method != PKCEMethodS256 {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedPKCEMethod, method, PKCEMethodS256)
	}

	if verifier == "" {
		return fmt.Errorf("code_verifier is required")
	}

	// RFC 7636: code_verifier must be 43-128 characters
	if len(verifier) < MinCodeVerifierLength {
		return fmt.Errorf("code_verifier must be at least %d characters (RFC 7636)", MinCodeVerifierLength)
	}
	if len(verifier) > MaxCodeVerifierLength {
		return fmt.Errorf("code_verifier must be at most %d characters (RFC 7636)", MaxCodeVerifierLength)
	}

	// RFC 7636: code_verifier can only contain [A-Z] / [a-z] / [0-9] / "-" / "." / "_" / "~"
	for _, ch := range verifier {
		isValid := (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') ||
			ch == '-' || ch == '.' || ch == '_' || ch == '~'
		if !isValid {
			return fmt.Errorf("code_verifier contains invalid characters (must be [A-Za-z0-9-._~])")
		}
	}

	hash := sha256.Sum256([]byte(verifier))
	computed := base64.RawURLEncoding.EncodeToString(hash[:])

	if subtle.ConstantTimeCompare([]byte(computed), []byte(challenge)) != 1 {
		return ErrPKCEMismatch
	}

	return nil
}
