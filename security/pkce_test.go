package security

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// challengeFor computes base64url(sha256(verifier)) without padding.
func challengeFor(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

func TestVerifyPKCEChallenge(t *testing.T) {
	verifier := strings.Repeat("a", 43)
	challenge := challengeFor(verifier)

	if err := VerifyPKCEChallenge(verifier, challenge, PKCEMethodS256); err != nil {
		t.Errorf("VerifyPKCEChallenge() error = %v, want nil", err)
	}
}

func TestVerifyPKCEChallenge_Mismatch(t *testing.T) {
	verifier := strings.Repeat("a", 43)
	challenge := challengeFor(verifier)

	// Flip a single character of the verifier; the challenge must no longer match.
	mutated := "b" + verifier[1:]
	err := VerifyPKCEChallenge(mutated, challenge, PKCEMethodS256)
	if !errors.Is(err, ErrPKCEMismatch) {
		t.Errorf("VerifyPKCEChallenge() error = %v, want ErrPKCEMismatch", err)
	}
}

func TestVerifyPKCEChallenge_UnsupportedMethod(t *testing.T) {
	verifier := strings.Repeat("a", 43)

	tests := []struct {
		name   string
		method string
	}{
		{"plain method", "plain"},
		{"empty method", ""},
		{"unknown method", "S512"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPKCEChallenge(verifier, verifier, tt.method)
			if !errors.Is(err, ErrUnsupportedPKCEMethod) {
				t.Errorf("VerifyPKCEChallenge(method=%q) error = %v, want ErrUnsupportedPKCEMethod", tt.method, err)
			}
		})
	}
}

func TestVerifyPKCEChallenge_VerifierValidation(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
	}{
		{"empty", ""},
		{"too short", strings.Repeat("a", 42)},
		{"too long", strings.Repeat("a", 129)},
		{"invalid characters", strings.Repeat("a", 42) + "!"},
		{"contains space", strings.Repeat("a", 42) + " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPKCEChallenge(tt.verifier, challengeFor(tt.verifier), PKCEMethodS256)
			if err == nil {
				t.Errorf("VerifyPKCEChallenge(%q) = nil, want error", tt.verifier)
			}
		})
	}
}

func TestVerifyPKCEChallenge_UnreservedCharset(t *testing.T) {
	// The full RFC 7636 unreserved charset must be accepted.
	verifier := strings.Repeat("Az0-._~", 7) // 49 chars
	if err := VerifyPKCEChallenge(verifier, challengeFor(verifier), PKCEMethodS256); err != nil {
		t.Errorf("VerifyPKCEChallenge() error = %v, want nil", err)
	}
}
