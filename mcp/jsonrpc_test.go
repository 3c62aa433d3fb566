package mcp

import (
	"encoding/json"
	"testing"
)

func TestAnyMessage_UnmarshalRequest(t *testing.T) {
	var msg AnyMessage
	data := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if msg.Method != "tools/list" {
		t.Errorf("Method = %q, want %q", msg.Method, "tools/list")
	}
	if msg.Type() != "request" {
		t.Errorf("Type() = %q, want %q", msg.Type(), "request")
	}
	if msg.ID.String() != "1" {
		t.Errorf("ID = %q, want %q", msg.ID.String(), "1")
	}
}

func TestAnyMessage_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`},
		{"missing version", `{"id":1,"method":"ping"}`},
		{"method with result", `{"jsonrpc":"2.0","id":1,"method":"ping","result":{}}`},
		{"method with error", `{"jsonrpc":"2.0","id":1,"method":"ping","error":{"code":-32600,"message":"x"}}`},
		{"neither method nor result", `{"jsonrpc":"2.0","id":1}`},
		{"both result and error", `{"jsonrpc":"2.0","id":1,"result":{},"error":{"code":-32600,"message":"x"}}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg AnyMessage
			if err := json.Unmarshal([]byte(tt.data), &msg); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tt.data)
			}
		})
	}
}

func TestAnyMessage_NotificationType(t *testing.T) {
	var msg AnyMessage
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if msg.Type() != "notification" {
		t.Errorf("Type() = %q, want %q", msg.Type(), "notification")
	}
}

func TestRequestID_StringAndNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"integer", `42`, "42", false},
		{"float", `1.5`, "1.5", false},
		{"string", `"abc"`, "abc", false},
		{"null rejected", `null`, "", true},
		{"object rejected", `{}`, "", true},
		{"array rejected", `[1]`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id RequestID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && id.String() != tt.want {
				t.Errorf("String() = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	var id RequestID
	if err := json.Unmarshal([]byte(`7`), &id); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(&id)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// Integral numbers must not come back as floats
	if string(out) != "7" {
		t.Errorf("Marshal() = %s, want 7", out)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(NewRequestID(1), ErrorCodeMethodNotFound, "method not found: nope", nil)
	if resp.Error == nil {
		t.Fatal("Error is nil")
	}
	if resp.Error.Code != ErrorCodeMethodNotFound {
		t.Errorf("Code = %d, want %d", resp.Error.Code, ErrorCodeMethodNotFound)
	}
	if resp.JSONRPCVersion != JSONRPCVersion {
		t.Errorf("JSONRPCVersion = %q, want %q", resp.JSONRPCVersion, JSONRPCVersion)
	}
}
