package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	if id == "" {
		t.Fatal("GenerateRequestID() returned empty string")
	}
	if !isValidRequestID(id) {
		t.Errorf("generated ID %q does not pass validation", id)
	}
	if GenerateRequestID() == id {
		t.Error("request IDs should be unique")
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID(empty ctx) = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID() = %q, want req-123", got)
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"uuid", "a8098c1a-f86e-11da-bd1a-00112444be1e", true},
		{"alphanumeric", "abc123", true},
		{"underscores", "req_id_1", true},
		{"empty", "", false},
		{"crlf injection", "abc\r\nX-Evil: 1", false},
		{"too long", string(make([]byte, 129)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidRequestID(tt.id); got != tt.want {
				t.Errorf("isValidRequestID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	t.Run("generates when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequestIDMiddleware(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Error("request ID not propagated to context")
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Error("response header does not match context ID")
		}
	})

	t.Run("preserves valid upstream ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id-1")
		RequestIDMiddleware(inner).ServeHTTP(httptest.NewRecorder(), req)

		if seen != "upstream-id-1" {
			t.Errorf("request ID = %q, want upstream-id-1", seen)
		}
	})

	t.Run("replaces invalid upstream ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "bad\r\nvalue")
		RequestIDMiddleware(inner).ServeHTTP(httptest.NewRecorder(), req)

		if seen == "bad\r\nvalue" || seen == "" {
			t.Errorf("invalid upstream ID was not replaced, got %q", seen)
		}
	})
}
