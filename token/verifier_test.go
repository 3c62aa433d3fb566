package token

import (
	"errors"
	"testing"
	"time"
)

func TestVerifierAcceptsValidBearer(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer, testAudience, nil)
	claims := NewClaims("client-abc", testIssuer, testAudience, "tools:invoke", time.Hour)
	raw := signTestToken(t, claims, testSecret)

	got, err := v.VerifyAuthorizationHeader("Bearer " + raw)
	if err != nil {
		t.Fatalf("VerifyAuthorizationHeader() error = %v", err)
	}
	if got.Subject != "client-abc" {
		t.Errorf("Subject = %q, want %q", got.Subject, "client-abc")
	}
}

func TestVerifierCollapsesFailures(t *testing.T) {
	v := NewVerifier(testSecret, testIssuer, testAudience, nil)

	expiredRaw := signTestToken(t, NewClaims("client-abc", testIssuer, testAudience, "", -time.Hour), testSecret)
	wrongKeyRaw := signTestToken(t, NewClaims("client-abc", testIssuer, testAudience, "", time.Hour), []byte("another-secret-another-secret!!!"))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer with no token", "Bearer "},
		{"malformed token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expiredRaw},
		{"wrong signature", "Bearer " + wrongKeyRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyAuthorizationHeader(tt.header)
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("error = %v, want ErrUnauthorized", err)
			}
		})
	}
}
