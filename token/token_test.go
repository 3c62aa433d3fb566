package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-0123456789abcdef0123")

const (
	testIssuer   = "https://gate.example.com"
	testAudience = "https://gate.example.com/mcp"
)

func signTestToken(t *testing.T, claims Claims, secret []byte) string {
	t.Helper()
	raw, err := Sign(claims, secret)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	return raw
}

func TestSignVerifyRoundTrip(t *testing.T) {
	claims := NewClaims("client-abc", testIssuer, testAudience, "tools:invoke", time.Hour)
	raw := signTestToken(t, claims, testSecret)

	got, err := Verify(raw, testSecret, testIssuer, testAudience)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.Subject != "client-abc" {
		t.Errorf("Subject = %q, want %q", got.Subject, "client-abc")
	}
	if got.Scope != "tools:invoke" {
		t.Errorf("Scope = %q, want %q", got.Scope, "tools:invoke")
	}
	if got.Issuer != testIssuer {
		t.Errorf("Issuer = %q, want %q", got.Issuer, testIssuer)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	claims := NewClaims("client-abc", testIssuer, testAudience, "", time.Hour)
	raw := signTestToken(t, claims, testSecret)

	_, err := Verify(raw, []byte("a-completely-different-secret!!!"), testIssuer, testAudience)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "client-abc",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	raw := signTestToken(t, claims, testSecret)

	_, err := Verify(raw, testSecret, testIssuer, testAudience)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Verify() error = %v, want ErrExpired", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"four segments", "aaaa.bbbb.cccc.dddd"},
		{"garbage segments", "!!!.###.$$$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.raw, testSecret, testIssuer, testAudience)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Verify(%q) error = %v, want ErrMalformed", tt.raw, err)
			}
		})
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	claims := NewClaims("client-abc", "https://other.example.com", testAudience, "", time.Hour)
	raw := signTestToken(t, claims, testSecret)

	_, err := Verify(raw, testSecret, testIssuer, testAudience)
	if !errors.Is(err, ErrInvalidClaims) {
		t.Errorf("Verify() error = %v, want ErrInvalidClaims", err)
	}
}

func TestVerifyWrongAudience(t *testing.T) {
	claims := NewClaims("client-abc", testIssuer, "https://other.example.com/mcp", "", time.Hour)
	raw := signTestToken(t, claims, testSecret)

	_, err := Verify(raw, testSecret, testIssuer, testAudience)
	if !errors.Is(err, ErrInvalidClaims) {
		t.Errorf("Verify() error = %v, want ErrInvalidClaims", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := NewClaims("client-abc", testIssuer, testAudience, "", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none: %v", err)
	}

	if _, err := Verify(raw, testSecret, testIssuer, testAudience); err == nil {
		t.Error("Verify() accepted a token signed with alg=none")
	}
}

func TestSignEmptySecret(t *testing.T) {
	claims := NewClaims("client-abc", testIssuer, testAudience, "", time.Hour)
	if _, err := Sign(claims, nil); err == nil {
		t.Error("Sign() with empty secret succeeded, want error")
	}
}
