package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func newTestSpanHelper(t *testing.T) *Instrumentation {
	t.Helper()
	inst, err := New(Config{
		Enabled: true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })
	return inst
}

func TestRecordError(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("server").Start(context.Background(), "test-span")
	defer span.End()

	testErr := errors.New("test error")
	RecordError(span, testErr)

	// Nil-safe variants
	RecordError(nil, testErr)
	RecordError(span, nil)
}

func TestSetSpanStatus(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("server").Start(context.Background(), "test-span")
	defer span.End()

	SetSpanSuccess(span)
	SetSpanError(span, "something failed")

	SetSpanSuccess(nil)
	SetSpanError(nil, "ignored")
}

func TestSetSpanAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("server").Start(context.Background(), "test-span")
	defer span.End()

	SetSpanAttributes(span, attribute.String("key", "value"))
	SetSpanAttributes(nil, attribute.String("key", "value"))
}

func TestAddFlowAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("server").Start(context.Background(), "test-span")
	defer span.End()

	AddFlowAttributes(span, "test-client", "tools:invoke")
	AddFlowAttributes(span, "test-client-2", "")
	AddFlowAttributes(span, "", "tools:invoke")
	AddFlowAttributes(nil, "client", "scope")
}

func TestAddPKCEAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("server").Start(context.Background(), "test-span")
	defer span.End()

	AddPKCEAttributes(span, "S256")
	AddPKCEAttributes(span, "")
	AddPKCEAttributes(nil, "S256")
}

func TestAddDispatchAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("mcp").Start(context.Background(), "test-span")
	defer span.End()

	AddDispatchAttributes(span, "tools/call", "echo")
	AddDispatchAttributes(span, "tools/list", "")
	AddDispatchAttributes(nil, "ping", "")
}

func TestAddStorageAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("storage").Start(context.Background(), "test-span")
	defer span.End()

	AddStorageAttributes(span, "take_grant", "memory")
	AddStorageAttributes(nil, "put_grant", "redis")
}

func TestAddHTTPAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("http").Start(context.Background(), "test-span")
	defer span.End()

	AddHTTPAttributes(span, "POST", "/token", 200)
	AddHTTPAttributes(nil, "GET", "/authorize", 302)
}

func TestAddSecurityAttributes(t *testing.T) {
	inst := newTestSpanHelper(t)

	_, span := inst.Tracer("security").Start(context.Background(), "test-span")
	defer span.End()

	AddSecurityAttributes(span, "203.0.113.7")
	AddSecurityAttributes(span, "")
	AddSecurityAttributes(nil, "203.0.113.7")
}
